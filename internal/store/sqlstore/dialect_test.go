package sqlstore

import "testing"

func TestRebindDollar(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"single", "SELECT * FROM users WHERE id = ?", "SELECT * FROM users WHERE id = $1"},
		{
			"several",
			"INSERT INTO months (user_id, year, month) VALUES (?, ?, ?)",
			"INSERT INTO months (user_id, year, month) VALUES ($1, $2, $3)",
		},
		{
			"more than nine",
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rebindDollar(tt.in); got != tt.want {
				t.Errorf("rebindDollar(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSQLiteRebindIsIdentity(t *testing.T) {
	const q = "SELECT * FROM users WHERE id = ? AND username = ?"
	if got := SQLite().Rebind(q); got != q {
		t.Errorf("sqlite Rebind changed the query: %q", got)
	}
}
