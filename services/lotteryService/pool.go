package lotteryService

import (
	"math/rand"

	"lotteryBoardBot/models"
)

// AddPrize converts count miss slots into a prize called name, merging with
// an existing entry of the same name. The pool total stays at exactly
// models.TotalSlots; entries that hit zero are dropped.
func AddPrize(list []models.PrizeEntry, name string, count int) ([]models.PrizeEntry, error) {
	if count <= 0 {
		return nil, &InsufficientMissSlotsError{Requested: count, Available: missCount(list)}
	}

	available := missCount(list)
	if available < count {
		return nil, &InsufficientMissSlotsError{Requested: count, Available: available}
	}

	result := make([]models.PrizeEntry, 0, len(list)+1)
	merged := false
	for _, entry := range list {
		switch entry.Name {
		case models.MissPrize:
			entry.Count -= count
		case name:
			entry.Count += count
			merged = true
		}
		if entry.Count > 0 {
			result = append(result, entry)
		}
	}
	if !merged {
		result = append(result, models.PrizeEntry{Name: name, Count: count})
	}

	return result, nil
}

// ShuffleAssignment expands the pool into a 100-slot bag and applies a
// uniform permutation. The pool must hold exactly models.TotalSlots entries.
func ShuffleAssignment(list []models.PrizeEntry, rng *rand.Rand) ([]string, error) {
	total := PoolTotal(list)
	if total != models.TotalSlots {
		return nil, &PoolSizeMismatchError{Total: total, Want: models.TotalSlots}
	}

	bag := make([]string, 0, models.TotalSlots)
	for _, entry := range list {
		for n := 0; n < entry.Count; n++ {
			bag = append(bag, entry.Name)
		}
	}

	rng.Shuffle(len(bag), func(a, b int) {
		bag[a], bag[b] = bag[b], bag[a]
	})

	return bag, nil
}

// ResetBoard restores the default all-miss pool and clears the shuffle and
// drawn registry. The alert channel, mention role, and posted message ids
// are left alone so an existing board can be re-rendered in place.
func ResetBoard(config *models.GuildConfig) {
	config.PrizeList = models.DefaultPrizeList()
	config.Shuffled = false
	config.PrizeAssignment = nil
	config.DrawnRegistry = map[int]models.DrawnSlot{}
}

// PoolTotal sums the slot counts of every entry in the pool.
func PoolTotal(list []models.PrizeEntry) int {
	total := 0
	for _, entry := range list {
		total += entry.Count
	}
	return total
}

func missCount(list []models.PrizeEntry) int {
	for _, entry := range list {
		if entry.Name == models.MissPrize {
			return entry.Count
		}
	}
	return 0
}
