package image

// SlotKey identifies a cached Kitty image by the fields the protocol
// actually needs to distinguish re-use from collision: the caller's
// image id, a content hash, and the pixel dimensions it was encoded at
// (§4.9 "the cache is keyed by (image_id, content-hash, pixel w, pixel
// h)").
type SlotKey struct {
	ImageID     uint32
	ContentHash [32]byte
	PixelW      uint32
	PixelH      uint32
}

type slot struct {
	used    bool
	key     SlotKey
	kittyID uint32
	lastUse uint64
	placed  bool
}

// KittyCacheSlots is the fixed persistent-state budget (§4.9 "up to 64
// cache slots").
const KittyCacheSlots = 64

// Cache is the Kitty image cache: a fixed 64-slot table keyed by
// [SlotKey], evicted by least-recently-used tick, grounded on the
// teacher's ImageManager.pruneLocked selection-sort-by-recency (here
// adapted from a byte-budget eviction to a slot-count one, and from
// wall-clock AccessedAt to a monotonic tick — the engine is a pure,
// single-threaded buffer manipulator with no wall-clock dependency
// elsewhere, and a tick keeps eviction order deterministic in tests).
type Cache struct {
	slots       [KittyCacheSlots]slot
	tick        uint64
	nextKittyID uint32
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// BeginFrame clears every slot's placed-this-frame bit (§4.9
// "begin-frame clears per-slot placed bits").
func (c *Cache) BeginFrame() {
	for i := range c.slots {
		c.slots[i].placed = false
	}
}

// Lookup finds a cached entry for key, marking it used and placed this
// frame. Reports the entry's assigned Kitty image id.
func (c *Cache) Lookup(key SlotKey) (kittyID uint32, found bool) {
	for i := range c.slots {
		s := &c.slots[i]
		if s.used && s.key == key {
			c.tick++
			s.lastUse = c.tick
			s.placed = true
			return s.kittyID, true
		}
	}
	return 0, false
}

// Insert assigns a fresh slot (evicting the least-recently-used
// occupied slot if the cache is full) for key and returns its new
// Kitty image id. evictedKittyID is the id of whatever occupied the
// slot before, which the caller must delete via the Kitty delete APC
// before transmitting the new image (§4.9 "on collision or eviction
// the slot's previous Kitty id is deleted before reassignment").
func (c *Cache) Insert(key SlotKey) (kittyID uint32, evictedKittyID uint32, evicted bool) {
	idx := -1
	for i := range c.slots {
		if !c.slots[i].used {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = c.victim()
		evictedKittyID = c.slots[idx].kittyID
		evicted = true
	}
	c.tick++
	c.nextKittyID++
	c.slots[idx] = slot{
		used:    true,
		key:     key,
		kittyID: c.nextKittyID,
		lastUse: c.tick,
		placed:  true,
	}
	return c.nextKittyID, evictedKittyID, evicted
}

// victim selects the occupied slot with the oldest lastUse tick, the
// same selection-sort-by-recency the teacher's pruneLocked performs
// over its unreferenced-image candidate list.
func (c *Cache) victim() int {
	best := 0
	for i := 1; i < len(c.slots); i++ {
		if c.slots[i].lastUse < c.slots[best].lastUse {
			best = i
		}
	}
	return best
}

// EndFrame releases every occupied slot that was not placed this
// frame, returning their Kitty ids so the caller can emit a delete APC
// for each (§4.9 "slots not placed this frame are released via
// delete").
func (c *Cache) EndFrame() []uint32 {
	var released []uint32
	for i := range c.slots {
		s := &c.slots[i]
		if s.used && !s.placed {
			released = append(released, s.kittyID)
			*s = slot{}
		}
	}
	return released
}
