package watcher

// seenSet guarda los tx hashes ya notificados junto con su timestamp.
// Un hash vacío nunca se considera visto.
type seenSet struct {
	hashes map[string]int64
}

func newSeenSet() *seenSet {
	return &seenSet{hashes: make(map[string]int64)}
}

func (s *seenSet) Has(hash string) bool {
	if hash == "" {
		return false
	}
	_, ok := s.hashes[hash]
	return ok
}

func (s *seenSet) Add(hash string, ts int64) {
	if hash == "" {
		return
	}
	s.hashes[hash] = ts
}

func (s *seenSet) Len() int {
	return len(s.hashes)
}

// PruneBelow elimina los hashes con timestamp estrictamente menor que watermark.
// Esos eventos ya los descarta el filtro de watermark, así que no se re-notifican.
func (s *seenSet) PruneBelow(watermark int64) int {
	removed := 0
	for h, ts := range s.hashes {
		if ts < watermark {
			delete(s.hashes, h)
			removed++
		}
	}
	return removed
}
