// Package record holds the canonical Record emitted for every accepted payload
// and the sentinel values substituted when a field cannot be resolved.
package record

// Sentinel defaults.
const (
	DefaultString        = ""
	DefaultIP            = "0.0.0.0"
	DefaultIPv6          = "0000:0000:0000:0000:0000:FFFF:0000:0000"
	PortDefault          = -1
	DatabaseNotAvailable = "NA"
)

// Accessor language and data type values.
const (
	LanguageFreeText = "FREE_TEXT"

	// DataTypeParseSQL asks the downstream pipeline to parse the SQL text itself.
	DataTypeParseSQL = "TEXT"
	// DataTypeConstruct marks records whose SQL structure was supplied in Data.Construct.
	DataTypeConstruct = "CONSTRUCT"
)

// Record is the canonical representation of one captured database event.
type Record struct {
	SessionID      string           `json:"sessionId"`
	DBName         string           `json:"dbName"`
	AppUserName    string           `json:"appUserName"`
	Time           Time             `json:"time"`
	SessionLocator SessionLocator   `json:"sessionLocator"`
	Accessor       Accessor         `json:"accessor"`
	Exception      *ExceptionRecord `json:"exception,omitempty"`
	Data           *Data            `json:"data,omitempty"`
}

// IsException reports whether the record carries an exception.
func (r *Record) IsException() bool {
	return r.Exception != nil
}

// Time is the event instant with the zone information captured at the source.
type Time struct {
	Timestamp        int64 `json:"timestamp"` // epoch milliseconds
	MinOffsetFromGMT int   `json:"minOffsetFromGMT"`
	MinDst           int   `json:"minDst"`
}

// SessionLocator describes the network endpoints. Only one address family is
// populated; the other keeps its sentinel.
type SessionLocator struct {
	ClientIP   string `json:"clientIp"`
	ClientPort int    `json:"clientPort"`
	ServerIP   string `json:"serverIp"`
	ServerPort int    `json:"serverPort"`
	IsIPv6     bool   `json:"isIpv6"`
	ClientIPv6 string `json:"clientIpv6"`
	ServerIPv6 string `json:"serverIpv6"`
}

// DefaultSessionLocator returns a locator with every field at its sentinel.
func DefaultSessionLocator() SessionLocator {
	return SessionLocator{
		ClientIP:   DefaultIP,
		ClientPort: PortDefault,
		ServerIP:   DefaultIP,
		ServerPort: PortDefault,
		ClientIPv6: DefaultIPv6,
		ServerIPv6: DefaultIPv6,
	}
}

type Accessor struct {
	DBUser            string `json:"dbUser"`
	ServerType        string `json:"serverType"`
	ServerOS          string `json:"serverOs"`
	ClientOS          string `json:"clientOs"`
	ClientHostName    string `json:"clientHostName"`
	ServerHostName    string `json:"serverHostName"`
	CommProtocol      string `json:"commProtocol"`
	DBProtocol        string `json:"dbProtocol"`
	DBProtocolVersion string `json:"dbProtocolVersion"`
	OSUser            string `json:"osUser"`
	SourceProgram     string `json:"sourceProgram"`
	ClientMAC         string `json:"client_mac"`
	ServerDescription string `json:"serverDescription"`
	ServiceName       string `json:"serviceName"`
	Language          string `json:"language"`
	DataType          string `json:"dataType"`
}

type ExceptionRecord struct {
	ExceptionTypeID string `json:"exceptionTypeId"`
	Description     string `json:"description"`
	SQLString       string `json:"sqlString"`
}

// Data carries the SQL of the event, either as raw text or as a Construct.
type Data struct {
	Construct          *Construct `json:"construct,omitempty"`
	OriginalSQLCommand string     `json:"originalSqlCommand"`
}

// Construct is the structured form of one or more statements.
type Construct struct {
	Sentences []Sentence `json:"sentences"`
	FullSQL   string     `json:"full_sql"`
}

// Sentence is one statement: a verb applied to its objects.
type Sentence struct {
	Verb    string           `json:"verb"`
	Objects []SentenceObject `json:"objects"`
}

type SentenceObject struct {
	Name string `json:"name"`
}

// NewSentence builds a sentence for verb acting on the named objects.
func NewSentence(verb string, objects ...string) Sentence {
	s := Sentence{Verb: verb, Objects: make([]SentenceObject, 0, len(objects))}
	for _, o := range objects {
		s.Objects = append(s.Objects, SentenceObject{Name: o})
	}
	return s
}
