package routes

import (
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2"

	"treedb/database"
	"treedb/snapshot"
)

// registry holds every database created through the API. Databases are
// in-memory only and live for the lifetime of the process.
type registry struct {
	lock sync.RWMutex
	dbs  map[string]*database.Database
}

var openDBs = &registry{dbs: map[string]*database.Database{}}

func (r *registry) create() *database.Database {
	r.lock.Lock()
	defer r.lock.Unlock()
	db := database.NewDatabase("")
	r.dbs[db.ID()] = db
	return db
}

func (r *registry) get(dbID string) (*database.Database, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	db, ok := r.dbs[dbID]
	return db, ok
}

func (r *registry) list() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	ids := make([]string, 0, len(r.dbs))
	for id := range r.dbs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// lookupCollection resolves dbID + collection name to a live collection,
// replying with the right status code on failure.
func lookupCollection(c *fiber.Ctx, dbID, name string) (*database.Collection, error) {
	if dbID == "" || name == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dbID and collection required"})
	}
	db, ok := openDBs.get(dbID)
	if !ok {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "database not found"})
	}
	coll, err := db.GetCollection(name)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return coll, nil
}

func SetupRoutes(router fiber.Router) {
	router.Get("/databases", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"databases": openDBs.list()})
	})

	router.Post("/create-db", func(c *fiber.Ctx) error {
		db := openDBs.create()
		return c.JSON(fiber.Map{"status": "created", "dbID": db.ID()})
	})

	router.Get("/collections", func(c *fiber.Ctx) error {
		dbID := c.Query("dbID")
		if dbID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dbID required"})
		}
		db, ok := openDBs.get(dbID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "database not found"})
		}
		return c.JSON(fiber.Map{"collections": db.Collections()})
	})

	router.Post("/create-collection", func(c *fiber.Ctx) error {
		var body struct {
			DBID  string `json:"dbID"`
			Name  string `json:"name"`
			Order int    `json:"order"`
		}
		if err := c.BodyParser(&body); err != nil || body.DBID == "" || body.Name == "" || body.Order < 3 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dbID, name and order>=3 required"})
		}
		db, ok := openDBs.get(body.DBID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "database not found"})
		}
		if _, err := db.CreateCollection(body.Name, body.Order); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "collection created"})
	})

	router.Post("/drop-collection", func(c *fiber.Ctx) error {
		var body struct {
			DBID string `json:"dbID"`
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil || body.DBID == "" || body.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dbID and name required"})
		}
		db, ok := openDBs.get(body.DBID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "database not found"})
		}
		if err := db.DropCollection(body.Name); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "collection dropped"})
	})

	router.Post("/insert", func(c *fiber.Ctx) error {
		var body struct {
			DBID       string `json:"dbID"`
			Collection string `json:"collection"`
			Key        string `json:"key"`
			Value      string `json:"value"`
		}
		if err := c.BodyParser(&body); err != nil || body.Key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json, key required"})
		}
		coll, err := lookupCollection(c, body.DBID, body.Collection)
		if err != nil || coll == nil {
			return err
		}
		old, replaced := coll.Set(body.Key, body.Value)
		if replaced {
			return c.JSON(fiber.Map{"status": "replaced", "previous": old})
		}
		return c.JSON(fiber.Map{"status": "inserted"})
	})

	router.Get("/find", func(c *fiber.Ctx) error {
		coll, err := lookupCollection(c, c.Query("dbID"), c.Query("collection"))
		if err != nil || coll == nil {
			return err
		}
		value, found := coll.Get(c.Query("key"))
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "key not found"})
		}
		return c.JSON(fiber.Map{"key": c.Query("key"), "value": value})
	})

	router.Post("/delete", func(c *fiber.Ctx) error {
		var body struct {
			DBID       string `json:"dbID"`
			Collection string `json:"collection"`
			Key        string `json:"key"`
		}
		if err := c.BodyParser(&body); err != nil || body.Key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json, key required"})
		}
		coll, err := lookupCollection(c, body.DBID, body.Collection)
		if err != nil || coll == nil {
			return err
		}
		if !coll.Delete(body.Key) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "key not found"})
		}
		return c.JSON(fiber.Map{"status": "deleted"})
	})

	router.Get("/scan", func(c *fiber.Ctx) error {
		coll, err := lookupCollection(c, c.Query("dbID"), c.Query("collection"))
		if err != nil || coll == nil {
			return err
		}
		entries := coll.Scan(c.Query("from"), c.Query("to"))
		items := make([]fiber.Map, 0, len(entries))
		for _, e := range entries {
			items = append(items, fiber.Map{"key": e.Key, "value": e.Value})
		}
		return c.JSON(fiber.Map{"count": len(items), "entries": items})
	})

	router.Get("/stats", func(c *fiber.Ctx) error {
		coll, err := lookupCollection(c, c.Query("dbID"), c.Query("collection"))
		if err != nil || coll == nil {
			return err
		}
		return c.JSON(coll.Stats())
	})

	router.Get("/export", func(c *fiber.Ctx) error {
		coll, err := lookupCollection(c, c.Query("dbID"), c.Query("collection"))
		if err != nil || coll == nil {
			return err
		}
		blob, err := snapshot.Encode(snapshot.Take(coll))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		return c.Send(blob)
	})

	router.Post("/import", func(c *fiber.Ctx) error {
		dbID := c.Query("dbID")
		if dbID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dbID required"})
		}
		db, ok := openDBs.get(dbID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "database not found"})
		}
		snap, err := snapshot.Decode(c.Body())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if _, err := snapshot.Restore(db, snap); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "imported", "collection": snap.Collection, "keys": len(snap.Entries)})
	})
}
