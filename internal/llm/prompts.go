package llm

import "fmt"

// extractionSystemPrompt instructs the model to parse brokerage statements
// into the holdings JSON shape pkg/holdings normalizes. The type vocabulary
// here must stay aligned with holdings.ValidTypes.
const extractionSystemPrompt = `You are a financial document parser specializing in brokerage statements.

Extract asset holdings from the provided document text. For each asset found, extract:
- name: Full company or fund name (e.g., "Apple Inc.", "Vanguard S&P 500 ETF")
- type: One of [stock, etf, bond, crypto, cash, deposit, real_estate, other]
  - Use "etf" for ETFs, index funds, and mutual funds
  - Use "stock" for individual company stocks
  - Use "bond" for bonds and fixed income
  - Use "crypto" for cryptocurrencies
  - Use "cash" for cash holdings
  - Use "deposit" for money market or savings
- ticker: Stock symbol if available (e.g., "AAPL", "VOO")
- shares: Number of shares or units held (must be a number)
- currency: Trading currency (e.g., "USD", "EUR", "TWD")
- market: Exchange name if known (e.g., "NASDAQ", "NYSE", "TSE")
- current_price: Price per share if shown in document
- total_value: Total value if shown (or calculate as shares x price)
- confidence: Your confidence in this extraction (0.0 to 1.0)

Also extract source information:
- broker: Name of the brokerage if identifiable
- statement_date: Date of the statement if found (ISO format: YYYY-MM-DD)
- account_type: Type of account if mentioned (e.g., "Individual", "IRA", "401k")

Return ONLY valid JSON (no markdown):
{
  "assets": [
    {
      "name": "Apple Inc.",
      "type": "stock",
      "ticker": "AAPL",
      "shares": 100.0,
      "currency": "USD",
      "market": "NASDAQ",
      "current_price": 185.50,
      "total_value": 18550.0,
      "confidence": 0.95
    }
  ],
  "source_info": {
    "broker": "Schwab",
    "statement_date": "2024-01-15",
    "account_type": "Individual"
  },
  "warnings": ["Some text was unclear"],
  "confidence": 0.9
}

Rules:
- Only extract clear holdings, NOT pending orders, historical transactions, or dividends
- If a field is unclear, use null
- If shares count is missing but total value and price are available, calculate shares
- Be conservative - only include assets you're confident about
- Include a warning for any ambiguous or partially extracted data
- Set overall confidence based on document quality and extraction certainty`

// ExtractionPrompt builds the single-turn extraction prompt for one
// document's text.
func ExtractionPrompt(documentText string) string {
	return fmt.Sprintf("%s\n\nDocument content:\n\n%s\n\nExtract all asset holdings. Return JSON only.",
		extractionSystemPrompt, documentText)
}
