package ledger

import "time"

// idGenerator produces time based ids (unix millis) that are strictly increasing
// even if called several times within the same millisecond
type idGenerator struct {
	now  func() time.Time
	last int64
}

func (g *idGenerator) next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func (g *idGenerator) seed(transactions []Transaction) {
	for _, trx := range transactions {
		if trx.ID > g.last {
			g.last = trx.ID
		}
	}
}
