package protocol

import (
	"net/url"
	"strings"
)

// Request field names understood by the provider
const (
	FieldBlog        = "blog"
	FieldKey         = "key"
	FieldUserIP      = "user_ip"
	FieldUserAgent   = "user_agent"
	FieldReferrer    = "referrer"
	FieldCommentType = "comment_type"
	FieldAuthorEmail = "comment_author_email"
	FieldAuthor      = "comment_author"
	FieldIsTest      = "is_test"
)

// CommentTypeSignup marks a submission as an account registration
const CommentTypeSignup = "signup"

// Field is a single name/value pair of a request body
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Fields is an ordered set of request fields. Order does not matter to the
// provider but is kept so that encoded bodies are reproducible.
type Fields []Field

// Add appends a field and returns the extended set
func (f Fields) Add(name, value string) Fields {
	return append(f, Field{Name: name, Value: value})
}

// Get returns the value of the first field called name
func (f Fields) Get(name string) (string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Encode serializes the fields as an application/x-www-form-urlencoded body
func (f Fields) Encode() string {
	var sb strings.Builder
	for i, field := range f {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(field.Name)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(field.Value))
	}
	return sb.String()
}
