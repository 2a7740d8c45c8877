package takeout

import "placegraph-backend/internal/domain"

// Chunk splits places into order-preserving groups of at most size records.
// The concatenation of the groups is always the original sequence.
func Chunk(places []domain.Place, size int) [][]domain.Place {
	if len(places) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(places)
	}
	batches := make([][]domain.Place, 0, (len(places)+size-1)/size)
	for start := 0; start < len(places); start += size {
		end := start + size
		if end > len(places) {
			end = len(places)
		}
		batches = append(batches, places[start:end])
	}
	return batches
}
