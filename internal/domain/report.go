package domain

type TodaysSales struct {
	Sales             []Sale  `json:"sales"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalTransactions int     `json:"total_transactions"`
}

// ProductSales is one product's aggregate across the line items of a report
// window. Name comes from the line-item snapshots, not the live catalog.
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type SalesReport struct {
	TotalRevenue       float64        `json:"total_revenue"`
	TotalTransactions  int            `json:"total_transactions"`
	AverageTransaction float64        `json:"average_transaction"`
	TopProducts        []ProductSales `json:"top_products"`
	Sales              []Sale         `json:"sales"`
}

// Invoice is a rendered document plus the filename the consumer should save
// it under. The core never writes it to disk.
type Invoice struct {
	Document string `json:"document"`
	Filename string `json:"filename"`
}
