package sqlmode

import (
	"sort"
	"strings"

	"github.com/vaibhaw-/RecordR/internal/recordr/config"
)

// serverTypes maps a sniffer parser name to the server type reported in the accessor.
var serverTypes = map[string]string{
	"CASSANDRA": "Cassandra",
	"DB2":       "DB2",
	"GREENPLUM": "Greenplum",
	"HIVE":      "Hive",
	"INFORMIX":  "Informix",
	"MARIADB":   "MariaDB",
	"MONGODB":   "MongoDB",
	"MSSQL":     "MSSQL",
	"MYSQL":     "MySql",
	"ORACLE":    "Oracle",
	"PGRS":      "PostgreSQL",
	"REDSHIFT":  "Redshift",
	"SNOWFLAKE": "Snowflake",
	"SYBASE":    "Sybase",
	"TERADATA":  "Teradata",
}

// ServerType returns the server type for a sniffer parser name.
func ServerType(sniffer string) (string, bool) {
	st, ok := serverTypes[strings.ToUpper(strings.TrimSpace(sniffer))]
	return st, ok
}

// KnownSniffers lists the supported sniffer parser names in sorted order.
func KnownSniffers() []string {
	names := make([]string, 0, len(serverTypes))
	for k := range serverTypes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SnifferName returns the normalized sniffer parser name configured in m.
// The value is read from the mapping itself; a {literal} wrapper is accepted.
func SnifferName(m config.Mapping) string {
	v, ok := m.Lookup(config.SnifferParser)
	if !ok {
		return ""
	}
	if lit, isLit := config.Literal(v); isLit {
		v = lit
	}
	return strings.ToUpper(strings.TrimSpace(v))
}
