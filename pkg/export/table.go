package export

// Table is the row-oriented shape every exporter renders.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}
