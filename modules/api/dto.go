package api

import "encoding/xml"

// twimlResponse is the markup envelope the messaging provider consumes.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// renderTwiML serializes a reply body into provider markup.
func renderTwiML(reply string) ([]byte, error) {
	body, err := xml.Marshal(twimlResponse{Message: reply})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
