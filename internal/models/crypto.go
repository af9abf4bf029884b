package models

// Crypto is a cryptocurrency market summary as served by the market data
// gateway. Prices are quoted in USD.
type Crypto struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Image         string  `json:"image,omitempty"`
	CurrentPrice  float64 `json:"currentPrice"`
	MarketCap     int64   `json:"marketCap"`
	MarketCapRank int     `json:"marketCapRank,omitempty"`
	PriceChange24 float64 `json:"priceChange24h"`
	High24        float64 `json:"high24h"`
	Low24         float64 `json:"low24h"`
	TotalVolume   float64 `json:"totalVolume"`
}
