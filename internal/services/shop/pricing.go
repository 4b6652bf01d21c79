package shop

// Price maps a rarity rank onto the configured price range linearly: lower
// ranks are rarer, sit further from maxRarity, and therefore price higher.
// Integer math throughout, truncating. Equal rarity bounds collapse the range
// to minPrice instead of dividing by zero.
func Price(rarityRank, minRarity, maxRarity int, minPrice, maxPrice int64) int64 {
	if maxRarity == minRarity {
		return minPrice
	}

	span := int64(maxRarity - rarityRank)

	return minPrice + span*(maxPrice-minPrice)/int64(maxRarity-minRarity)
}
