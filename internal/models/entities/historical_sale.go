package entities

import "time"

// HistoricalSale is one previously sold vehicle from the dealer sales
// export. Rows are upserted keyed by (vin, stock_nbr); a re-import of the
// same key replaces the prior row.
type HistoricalSale struct {
	ID            string     `db:"id"`
	VIN           string     `db:"vin"`
	StockNbr      string     `db:"stock_nbr"`
	DateSold      *time.Time `db:"date_sold"`
	Year          *int       `db:"year"`
	Make          *string    `db:"make"`
	Model         *string    `db:"model"`
	PurchasePrice *float64   `db:"purchase_price"`
	TotalRepairs  *float64   `db:"total_repairs"`
	TotalCost     *float64   `db:"total_cost"`
	SalesPrice    *float64   `db:"sales_price"`
	GrossProfit   *float64   `db:"gross_profit"`
	NetProfit     *float64   `db:"net_profit"`
	DaysToSell    *int       `db:"days_to_sell"`
	Location      *string    `db:"location"`
	PurchasedFrom *string    `db:"purchased_from"`
	CreatedAt     time.Time  `db:"created_at"`
}

// TierStats is the aggregate a single match tier computes over its hits
type TierStats struct {
	MatchCount    int        `db:"match_count" json:"match_count"`
	AvgDaysToSell *float64   `db:"avg_days_to_sell" json:"avg_days_to_sell"`
	LastSoldDate  *time.Time `db:"last_sold_date" json:"last_sold_date"`
}
