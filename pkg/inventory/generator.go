package inventory

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cymbal-superstore/inventory-functions/models"
)

const (
	day = 24 * time.Hour

	maxPrice          = 10
	maxAgedQuantity   = 500
	maxRecentQuantity = 100

	// Aged products are dated between 3 and 12 months back.
	agedMinAge   = 90 * day
	agedSpread   = 275 * day
	recentSpread = 6 * day
)

// Candidate is a generated product together with the group it came from.
type Candidate struct {
	Group   Group
	Product models.Product
}

// Generator builds randomized demo products. Generate may be called from
// concurrent seed requests; mu guards rnd.
type Generator struct {
	imageDir string
	now      func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a generator writing image paths under imageDir.
// A nil now uses time.Now and a nil src is seeded from the clock.
func NewGenerator(imageDir string, now func() time.Time, src rand.Source) *Generator {
	if now == nil {
		now = time.Now
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{imageDir: imageDir, now: now, rnd: rand.New(src)}
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rnd.Intn(hi-lo+1)
}

func (g *Generator) within(d time.Duration) time.Duration {
	return time.Duration(g.rnd.Int63n(int64(d)))
}

func (g *Generator) base(name string, now time.Time) models.Product {
	return models.Product{
		Name:            name,
		Price:           g.between(1, maxPrice),
		ImgFile:         ImageFile(g.imageDir, name),
		ActualDateAdded: now,
	}
}

func (g *Generator) aged(name string, now time.Time) models.Product {
	p := g.base(name, now)
	p.Quantity = g.between(1, maxAgedQuantity)
	p.Timestamp = now.Add(-agedMinAge - g.within(agedSpread))
	return p
}

func (g *Generator) recent(name string, now time.Time) models.Product {
	p := g.base(name, now)
	p.Quantity = g.between(1, maxRecentQuantity)
	p.Timestamp = now.Add(-g.within(recentSpread))
	return p
}

func (g *Generator) outOfStock(name string, now time.Time) models.Product {
	p := g.recent(name, now)
	p.Quantity = 0
	return p
}

// Generate returns one candidate for every catalog name, aged products
// first, then recent, then out of stock. All share the same actual date.
func (g *Generator) Generate() []Candidate {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	out := make([]Candidate, 0, CatalogSize())
	for _, name := range agedProducts {
		out = append(out, Candidate{Group: GroupAged, Product: g.aged(name, now)})
	}
	for _, name := range recentProducts {
		out = append(out, Candidate{Group: GroupRecent, Product: g.recent(name, now)})
	}
	for _, name := range outOfStockProducts {
		out = append(out, Candidate{Group: GroupOutOfStock, Product: g.outOfStock(name, now)})
	}
	return out
}
