package model

// State is the full persisted catalog: products, categories and the
// newest-first transaction list.
type State struct {
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
}

// Clone returns a deep copy of s
func (s State) Clone() State {
	c := State{
		Products:     make([]Product, len(s.Products)),
		Transactions: make([]Transaction, len(s.Transactions)),
		Categories:   make([]Category, len(s.Categories)),
	}
	for i, p := range s.Products {
		c.Products[i] = p.Clone()
	}
	for i, t := range s.Transactions {
		c.Transactions[i] = t.Clone()
	}
	copy(c.Categories, s.Categories)
	return c
}

// Normalize replaces nil collections with empty ones so the state always
// encodes as arrays
func (s State) Normalize() State {
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	return s
}

// FindProduct returns the index of the product with id, or -1
func (s State) FindProduct(id string) int {
	for i, p := range s.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// HasCategory reports whether a category with the exact name exists
func (s State) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
