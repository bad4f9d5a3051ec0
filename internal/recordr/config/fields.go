package config

// Canonical field names accepted as keys of a mapping file.
const (
	SessionID          = "session_id"
	DBName             = "db_name"
	AppUserName        = "app_user_name"
	ExceptionTypeID    = "exception_type_id"
	ExceptionDesc      = "exception_description"
	SQLString          = "sql_string"
	OriginalSQLCommand = "original_sql_command"
	Object             = "object"
	Verb               = "verb"
	IsIPv6             = "is_ipv6"
	ClientIP           = "client_ip"
	ClientIPv6         = "client_ipv6"
	ServerIP           = "server_ip"
	ServerIPv6         = "server_ipv6"
	ClientPort         = "client_port"
	ServerPort         = "server_port"
	ServiceName        = "service_name"
	DBUser             = "db_user"
	DBProtocol         = "db_protocol"
	DBProtocolVersion  = "db_protocol_version"
	ServerType         = "server_type"
	ServerOS           = "server_os"
	ClientOS           = "client_os"
	ServerDescription  = "server_description"
	ServerHostname     = "server_hostname"
	ClientHostname     = "client_hostname"
	ClientMAC          = "client_mac"
	CommProtocol       = "comm_protocol"
	OSUser             = "os_user"
	SourceProgram      = "source_program"
	Language           = "language"
	DataType           = "data_type"
	Timestamp          = "timestamp"
	SnifferParser      = "sniffer_parser"
)

var knownFields = map[string]struct{}{
	SessionID: {}, DBName: {}, AppUserName: {}, ExceptionTypeID: {}, ExceptionDesc: {},
	SQLString: {}, OriginalSQLCommand: {}, Object: {}, Verb: {}, IsIPv6: {},
	ClientIP: {}, ClientIPv6: {}, ServerIP: {}, ServerIPv6: {}, ClientPort: {}, ServerPort: {},
	ServiceName: {}, DBUser: {}, DBProtocol: {}, DBProtocolVersion: {}, ServerType: {},
	ServerOS: {}, ClientOS: {}, ServerDescription: {}, ServerHostname: {}, ClientHostname: {},
	ClientMAC: {}, CommProtocol: {}, OSUser: {}, SourceProgram: {}, Language: {}, DataType: {},
	Timestamp: {}, SnifferParser: {},
}

// KnownField reports whether name is a canonical field name.
func KnownField(name string) bool {
	_, ok := knownFields[name]
	return ok
}
