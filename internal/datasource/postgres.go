package datasource

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

var (
	ErrNoConnection  = errors.New("no database connection")
	ErrTableNotFound = errors.New("table not found")
)

// Config holds connection details.
type Config struct {
	Type     string `json:"type" yaml:"type"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	DBName   string `json:"dbname" yaml:"dbname"`
	SSLMode  string `json:"sslmode" yaml:"sslmode"`
}

// Normalize fills in the defaults lib/pq expects for omitted fields.
func (c *Config) Normalize() {
	if c.Type == "" {
		c.Type = "postgres"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
}

// Source is a queryable data source that can surface table samples for
// shape inference.
type Source interface {
	Connect(config Config) error
	Close() error
	ListTables() ([]string, error)
	Sample(tableName string, limit int) (*TableSample, error)
}

// TableSample holds raw sampled rows with their ordered column names,
// the input to shape inference.
type TableSample struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// PostgresSource implements Source for PostgreSQL.
type PostgresSource struct {
	db *sql.DB
}

func (p *PostgresSource) Connect(config Config) error {
	config.Normalize()
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	p.db = db
	return nil
}

func (p *PostgresSource) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PostgresSource) ListTables() ([]string, error) {
	if p.db == nil {
		return nil, ErrNoConnection
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name;
	`
	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

// Sample fetches up to limit rows from a table. Table names cannot be
// bound as query parameters, so the name is checked against the catalog
// before being interpolated.
func (p *PostgresSource) Sample(tableName string, limit int) (*TableSample, error) {
	if p.db == nil {
		return nil, ErrNoConnection
	}

	tables, err := p.ListTables()
	if err != nil {
		return nil, err
	}
	known := false
	for _, t := range tables {
		if t == tableName {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	query := fmt.Sprintf(`SELECT * FROM "%s" LIMIT %d`, tableName, limit)
	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result [][]string
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make([]string, len(columns))
		for i, val := range values {
			switch v := val.(type) {
			case nil:
				row[i] = ""
			case []byte:
				row[i] = string(v)
			case time.Time:
				row[i] = v.Format(time.RFC3339)
			default:
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		result = append(result, row)
	}

	return &TableSample{Name: tableName, Columns: columns, Rows: result}, rows.Err()
}
