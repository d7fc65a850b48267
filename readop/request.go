package readop

import (
	"encoding/xml"
	"strings"

	"github.com/damianoneill/netconf-yang-server/apperr"
	"github.com/damianoneill/netconf-yang-server/datastore"
)

// requestBody is the decoded shape of a <get>/<get-config> body
// (spec.md §6): optional <source>, optional <filter>, optional
// <with-defaults>.
type requestBody struct {
	Source struct {
		Running   *struct{} `xml:"running"`
		Startup   *struct{} `xml:"startup"`
		Candidate *struct{} `xml:"candidate"`
	} `xml:"source"`
	Filter struct {
		Type    string `xml:"type,attr"`
		Select  string `xml:"select,attr"`
		Content string `xml:",innerxml"`
	} `xml:"filter"`
	WithDefaults string `xml:"with-defaults"`
}

// decodeRequestBody unmarshals innerxml (the content of a <get> or
// <get-config> element, as carried by RPCRequest.Body) into a
// requestBody. innerxml has no single root so it's wrapped in a
// synthetic one before decoding.
func decodeRequestBody(innerxml string) (requestBody, error) {
	var body requestBody
	wrapped := "<op>" + innerxml + "</op>"
	if err := xml.Unmarshal([]byte(wrapped), &body); err != nil {
		return requestBody{}, apperr.Parse("malformed request body: %v", err)
	}
	return body, nil
}

// datastoreFrom resolves the <source>/* element to a Datastore,
// spec.md §4.F step 1.
func (b requestBody) datastoreFrom() datastore.Datastore {
	switch {
	case b.Source.Startup != nil:
		return datastore.Startup
	case b.Source.Candidate != nil:
		return datastore.Candidate
	default:
		return datastore.Running
	}
}

// hasFilter reports whether the request carried a non-empty <filter>.
func (b requestBody) hasFilter() bool {
	return b.Filter.Type != "" || strings.TrimSpace(b.Filter.Content) != ""
}
