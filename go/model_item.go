package shopserver

type Item struct {
	Id int64 `json:"id,omitempty"`

	Name string `json:"name"`

	Price int `json:"price"`

	StockQuantity int `json:"stockQuantity"`

	Categories []string `json:"categories,omitempty"`
}
