package protocol

import (
	"encoding/xml"
	"fmt"
)

// Document shapes. Struct tags define the schema both sides honor.

type importDoc struct {
	XMLName      xml.Name    `xml:"importResult"`
	Status       string      `xml:"status,attr"`
	ErrorCode    string      `xml:"errorCode,omitempty"`
	ErrorMessage string      `xml:"errorMessage,omitempty"`
	Results      *resultsDoc `xml:"results,omitempty"`
}

type resultsDoc struct {
	Photos []photoDoc `xml:"photo"`
}

type photoDoc struct {
	Path             string     `xml:"path,attr"`
	Status           string     `xml:"status,attr"`
	LocalIdentifier  string     `xml:"localIdentifier,omitempty"`
	URL              string     `xml:"url,omitempty"`
	FavoriteRestored bool       `xml:"favoriteRestored,omitempty"`
	AlbumsRestored   *albumsDoc `xml:"albumsRestored,omitempty"`
	ErrorCode        string     `xml:"errorCode,omitempty"`
	ErrorMessage     string     `xml:"errorMessage,omitempty"`
}

type albumsDoc struct {
	Albums []albumDoc `xml:"album"`
}

type albumDoc struct {
	Identifier string `xml:"identifier"`
	Title      string `xml:"title,omitempty"`
}

// EncodeImport serializes a batch import outcome, trailing newline included.
func EncodeImport(o *BatchOutcome) ([]byte, error) {
	if err := validateStatus(o.Status); err != nil {
		return nil, fmt.Errorf("cannot encode import outcome: %w", err)
	}

	doc := importDoc{
		Status:       o.Status,
		ErrorCode:    o.ErrorCode,
		ErrorMessage: o.ErrorMessage,
	}
	if o.Status == StatusSuccess {
		results := resultsDoc{Photos: make([]photoDoc, 0, len(o.Results))}
		for _, r := range o.Results {
			results.Photos = append(results.Photos, encodePhoto(r))
		}
		doc.Results = &results
	}

	return marshal(doc)
}

func encodePhoto(r PhotoResult) photoDoc {
	p := photoDoc{
		Path:             r.Path,
		Status:           r.Status,
		LocalIdentifier:  r.LocalIdentifier,
		URL:              r.URL,
		FavoriteRestored: r.FavoriteRestored,
		ErrorCode:        r.ErrorCode,
		ErrorMessage:     r.ErrorMessage,
	}
	if len(r.AlbumsRestored) > 0 {
		albums := albumsDoc{Albums: make([]albumDoc, 0, len(r.AlbumsRestored))}
		for _, a := range r.AlbumsRestored {
			albums.Albums = append(albums.Albums, albumDoc{Identifier: a.Identifier, Title: a.Title})
		}
		p.AlbumsRestored = &albums
	}
	return p
}

// DecodeImport parses a batch import result document.
func DecodeImport(data []byte) (*BatchOutcome, error) {
	var doc importDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse import result: %w", err)
	}
	if err := validateStatus(doc.Status); err != nil {
		return nil, fmt.Errorf("malformed import result: %w", err)
	}

	outcome := &BatchOutcome{
		Status:       doc.Status,
		ErrorCode:    doc.ErrorCode,
		ErrorMessage: doc.ErrorMessage,
	}
	if doc.Status != StatusSuccess {
		return outcome, nil
	}

	outcome.Results = []PhotoResult{}
	if doc.Results == nil {
		return outcome, nil
	}
	for _, p := range doc.Results.Photos {
		if err := validateStatus(p.Status); err != nil {
			return nil, fmt.Errorf("malformed result for %q: %w", p.Path, err)
		}
		r := PhotoResult{
			Path:             p.Path,
			Status:           p.Status,
			LocalIdentifier:  p.LocalIdentifier,
			URL:              p.URL,
			FavoriteRestored: p.FavoriteRestored,
			ErrorCode:        p.ErrorCode,
			ErrorMessage:     p.ErrorMessage,
		}
		if p.AlbumsRestored != nil {
			for _, a := range p.AlbumsRestored.Albums {
				r.AlbumsRestored = append(r.AlbumsRestored, AlbumRestored{Identifier: a.Identifier, Title: a.Title})
			}
		}
		outcome.Results = append(outcome.Results, r)
	}

	return outcome, nil
}

type deleteDoc struct {
	XMLName      xml.Name `xml:"deleteResult"`
	Status       string   `xml:"status,attr"`
	DeletedCount *int     `xml:"deletedCount,omitempty"`
	ErrorCode    string   `xml:"errorCode,omitempty"`
	ErrorMessage string   `xml:"errorMessage,omitempty"`
}

// EncodeDelete serializes a delete outcome, trailing newline included.
func EncodeDelete(o *DeleteOutcome) ([]byte, error) {
	if err := validateStatus(o.Status); err != nil {
		return nil, fmt.Errorf("cannot encode delete outcome: %w", err)
	}

	doc := deleteDoc{
		Status:       o.Status,
		ErrorCode:    o.ErrorCode,
		ErrorMessage: o.ErrorMessage,
	}
	if o.Status == StatusSuccess {
		count := o.DeletedCount
		doc.DeletedCount = &count
	}

	return marshal(doc)
}

// DecodeDelete parses a delete result document.
func DecodeDelete(data []byte) (*DeleteOutcome, error) {
	var doc deleteDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse delete result: %w", err)
	}
	if err := validateStatus(doc.Status); err != nil {
		return nil, fmt.Errorf("malformed delete result: %w", err)
	}

	outcome := &DeleteOutcome{
		Status:       doc.Status,
		ErrorCode:    doc.ErrorCode,
		ErrorMessage: doc.ErrorMessage,
	}
	if doc.DeletedCount != nil {
		outcome.DeletedCount = *doc.DeletedCount
	}
	return outcome, nil
}

// marshal renders a document with the XML header and a trailing newline.
func marshal(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result document: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
