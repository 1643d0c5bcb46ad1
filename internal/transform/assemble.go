package transform

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Top-level attachment fields.
const (
	PDFKey    = "calculationsPdfFileContent"
	PhotosKey = "photos"
)

const (
	inspectionDateLayout = "1/2/06"
	phonePrefix          = "+"
)

// textFields are mandatory scalars that the certificate format expects as
// strings even when the export holds them as numbers.
var textFields = [][]string{
	{"buildingData", "buildingAddress", "houseNumber"},
	{"buildingData", "buildingAddress", "building"},
	{"buildingData", "buildingAddress", "floor"},
	{"buildingData", "buildingAddress", "doorNumber"},
	{"buildingData", "buildingAddress", "staircase"},
	{"buildingData", "topographicalNumber"},
	{"certifierDetails", "address", "houseNumber"},
	{"certifierDetails", "address", "building"},
	{"certifierDetails", "address", "floor"},
	{"certifierDetails", "address", "doorNumber"},
	{"certifierDetails", "address", "staircase"},
	{"certifierDetails", "topographicalNumber"},
}

var (
	phoneField          = []string{"certifierDetails", "phoneNumber"}
	inspectionDateField = []string{"validity", "siteInspectionDate"}
)

// Input is everything one transformation consumes.
type Input struct {
	Entries []Entry
	PDF     []byte
	Images  []Image
}

// Sections are the intermediate results of one transformation, before the
// mandatory coercions and attachments are applied.
type Sections struct {
	Structures []*Structure
	Proposals  []*Proposal
	Systems    []*System
	Document   *Object
}

// Reconstruct classifies the entries and runs every reconstruction pass.
// The reconstructed lists are attached to Document under their family key
// when non-empty.
func Reconstruct(entries []Entry) Sections {
	streams := Classify(entries)
	s := Sections{
		Structures: BuildStructures(streams.Structures),
		Proposals:  BuildProposals(streams.Proposals),
		Systems:    BuildSystems(streams.Systems),
		Document:   Materialize(streams.Other),
	}
	if len(s.Structures) > 0 {
		s.Document.Set(StructuresKey, s.Structures)
	}
	if len(s.Proposals) > 0 {
		s.Document.Set(ProposalsKey, s.Proposals)
	}
	if len(s.Systems) > 0 {
		s.Document.Set(SystemsKey, s.Systems)
	}
	return s
}

// Transform assembles the final document. It fails without partial output
// when a mandatory field is missing or the site inspection date is
// malformed.
func Transform(in Input) (*Object, error) {
	doc := Reconstruct(in.Entries).Document
	if err := applyCoercions(doc); err != nil {
		return nil, err
	}
	doc.Set(PDFKey, base64.StdEncoding.EncodeToString(in.PDF))
	doc.Set(PhotosKey, EncodePhotos(in.Images))
	return doc, nil
}

// Encode writes doc as indented JSON. Non-ASCII text and HTML characters
// are written as-is.
func Encode(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

func applyCoercions(doc *Object) error {
	for _, path := range textFields {
		parent, key, v, err := lookup(doc, path)
		if err != nil {
			return err
		}
		parent.Set(key, Text(v))
	}

	parent, key, v, err := lookup(doc, phoneField)
	if err != nil {
		return err
	}
	parent.Set(key, phonePrefix+Text(v))

	parent, key, v, err = lookup(doc, inspectionDateField)
	if err != nil {
		return err
	}
	date, err := documentDate(v)
	if err != nil {
		return &FieldError{Path: strings.Join(inspectionDateField, "."), Value: v, Err: ErrInvalidDate}
	}
	parent.Set(key, date)
	return nil
}

// lookup resolves a mandatory path, returning the object that holds the
// final segment and its current value.
func lookup(doc *Object, path []string) (*Object, string, any, error) {
	cur := doc
	for i, seg := range path[:len(path)-1] {
		v, ok := cur.Get(seg)
		child, isObj := v.(*Object)
		if !ok || !isObj {
			return nil, "", nil, &FieldError{Path: strings.Join(path[:i+1], "."), Err: ErrMissingField}
		}
		cur = child
	}
	key := path[len(path)-1]
	v, ok := cur.Get(key)
	if !ok {
		return nil, "", nil, &FieldError{Path: strings.Join(path, "."), Err: ErrMissingField}
	}
	return cur, key, v, nil
}

// documentDate rewrites "M/D/YY" as "YY.MM.DD.".
func documentDate(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", ErrInvalidDate
	}
	t, err := time.Parse(inspectionDateLayout, s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d.%02d.%02d.", t.Year()%100, int(t.Month()), t.Day()), nil
}
