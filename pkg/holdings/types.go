// Package holdings defines the asset holding records extracted from
// brokerage documents and the normalizer that turns loosely-typed recovered
// fields into them.
package holdings

// Asset type classifications. Mutual and index funds are classified as etf;
// money market and savings as deposit.
const (
	TypeStock      = "stock"
	TypeETF        = "etf"
	TypeBond       = "bond"
	TypeCrypto     = "crypto"
	TypeCash       = "cash"
	TypeDeposit    = "deposit"
	TypeRealEstate = "real_estate"
	TypeOther      = "other"
)

// ValidTypes is the closed set of accepted holding types.
var ValidTypes = map[string]bool{
	TypeStock:      true,
	TypeETF:        true,
	TypeBond:       true,
	TypeCrypto:     true,
	TypeCash:       true,
	TypeDeposit:    true,
	TypeRealEstate: true,
	TypeOther:      true,
}

// Holding is a single asset extracted from a brokerage statement.
type Holding struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Ticker       string   `json:"ticker,omitempty"`
	Shares       float64  `json:"shares"`
	Currency     string   `json:"currency"`
	Market       string   `json:"market,omitempty"`
	CurrentPrice *float64 `json:"current_price,omitempty"`
	TotalValue   *float64 `json:"total_value,omitempty"`
	Confidence   float64  `json:"confidence"`
}

// SourceInfo describes the source document. All fields are optional.
type SourceInfo struct {
	Broker        string `json:"broker,omitempty"`
	StatementDate string `json:"statement_date,omitempty"`
	AccountType   string `json:"account_type,omitempty"`
}

// ExtractionResult is the outcome of one document analysis. It is built once
// per request; after construction the only permitted mutation is the
// confidence downgrade applied for truncated documents, which never raises
// the value.
type ExtractionResult struct {
	Holdings   []Holding  `json:"assets"`
	SourceInfo SourceInfo `json:"source_info"`
	Warnings   []string   `json:"warnings"`
	Confidence float64    `json:"confidence"`
}
