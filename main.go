package main

import "treedb/dbcli"

func main() {
	dbcli.Execute()
}
