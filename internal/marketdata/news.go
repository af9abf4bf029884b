package marketdata

import (
	"time"

	"github.com/trogers1052/finance-tracker/internal/models"
)

// NewsFeed serves the static market news records
type NewsFeed struct {
	items []models.NewsItem
}

// NewNewsFeed builds the feed with articles timestamped relative to now
func NewNewsFeed() *NewsFeed {
	now := time.Now()
	return &NewsFeed{
		items: []models.NewsItem{
			{
				ID:          1,
				Title:       "Bitcoin Reaches New All-Time High",
				Description: "Bitcoin surpasses $100,000 mark as institutional adoption continues to grow.",
				Source:      "Crypto News",
				PublishedAt: now.Add(-2 * time.Hour),
				URL:         "#",
				Category:    "crypto",
			},
			{
				ID:          2,
				Title:       "Tech Stocks Rally on Strong Earnings",
				Description: "Major tech companies report better-than-expected quarterly earnings, driving market gains.",
				Source:      "Market Watch",
				PublishedAt: now.Add(-5 * time.Hour),
				URL:         "#",
				Category:    "stocks",
			},
			{
				ID:          3,
				Title:       "Federal Reserve Maintains Interest Rates",
				Description: "Fed keeps rates steady as inflation shows signs of cooling.",
				Source:      "Financial Times",
				PublishedAt: now.Add(-8 * time.Hour),
				URL:         "#",
				Category:    "economy",
			},
			{
				ID:          4,
				Title:       "Ethereum 2.0 Upgrade Shows Promising Results",
				Description: "Network efficiency improves significantly following latest protocol update.",
				Source:      "Blockchain Today",
				PublishedAt: now.Add(-12 * time.Hour),
				URL:         "#",
				Category:    "crypto",
			},
			{
				ID:          5,
				Title:       "Electric Vehicle Stocks Surge on New Policy",
				Description: "Government incentives boost EV manufacturer stock prices.",
				Source:      "Auto Finance",
				PublishedAt: now.Add(-24 * time.Hour),
				URL:         "#",
				Category:    "stocks",
			},
			{
				ID:          6,
				Title:       "Gold Prices Stabilize Amid Market Uncertainty",
				Description: "Precious metals maintain value as investors seek safe havens.",
				Source:      "Commodity Report",
				PublishedAt: now.Add(-36 * time.Hour),
				URL:         "#",
				Category:    "commodities",
			},
		},
	}
}

// News returns up to limit articles, optionally filtered by category.
// An empty category matches everything.
func (f *NewsFeed) News(category string, limit int) []models.NewsItem {
	if limit <= 0 {
		limit = 10
	}

	filtered := []models.NewsItem{}
	for _, item := range f.items {
		if category != "" && item.Category != category {
			continue
		}
		filtered = append(filtered, item)
		if len(filtered) == limit {
			break
		}
	}
	return filtered
}
