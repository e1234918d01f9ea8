package session

// catalogSchemaDoc is handed to the model verbatim so its SQL matches the
// store exactly. Keep it in sync with the catalog migrations.
const catalogSchemaDoc = `The catalog is a SQLite database with two tables:

TABLE products
  id          TEXT PRIMARY KEY  -- catalog identifier, also the vector index key
  sku         TEXT              -- manufacturer SKU
  title       TEXT              -- display name, e.g. 'Traxxas Slash 4x4 VXL'
  brand       TEXT              -- e.g. 'Traxxas', 'Arrma', 'Losi'
  category    TEXT              -- e.g. 'trucks', 'buggies', 'crawlers'
  price       REAL              -- current price in USD
  availability TEXT             -- 'in_stock', 'backorder' or 'discontinued'
  description TEXT              -- long-form marketing copy

TABLE parts
  id                     TEXT PRIMARY KEY
  sku                    TEXT
  name                   TEXT    -- e.g. 'steering servo', 'drive shaft'
  category               TEXT
  compatible_product_id  TEXT REFERENCES products(id)

parts joins to products on parts.compatible_product_id = products.id.`

const basePrompt = `You are PartsPro, the product assistant for an RC car and parts store. You help customers find vehicles, spare parts and upgrades, and answer questions about their orders.

You answer from the catalog, not from memory. When a question involves the catalog, call the catalog_search tool. Write plain SQLite SELECT statements and always project the id column. When the question is about meaning or suitability ("good for beginners", "handles jumps well") rather than exact attributes, also set use_semantic to true and provide a semantic_query describing what the customer wants.

If a search returns nothing useful, say so honestly. Never invent products, prices or availability.

` + catalogSchemaDoc

// semanticOnlyHint is appended once the structured path has failed repeatedly
// within the current turn.
const semanticOnlyHint = `

NOTE: SQL queries against the catalog are currently failing. Stop refining the SQL. Use catalog_search with a minimal query such as "SELECT id FROM products LIMIT 0", set use_semantic to true and rely on the semantic_query to find products.`

func (s *Session) systemPrompt() string {
	if s.semanticOnly {
		return basePrompt + semanticOnlyHint
	}
	return basePrompt
}
