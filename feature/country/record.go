package country

import (
	"errors"
	"fmt"

	"geotree/core/reconcile"
	"geotree/core/taxonomy"

	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"
)

// Record is a fetched country mapped into the taxonomy schema.
type Record struct {
	Name   string
	Fields taxonomy.Fields
}

// Item returns the record as a reconciliation item.
func (r Record) Item() reconcile.Item {
	return reconcile.Item{Name: r.Name, Fields: r.Fields}
}

// MapRecord validates one element of the fetched array.
//
// name.common, cca2 and latlng are required. cca3, ccn3, region and subregion
// default to the empty string, which clears any stored value on update. All
// problems of the record are reported together in a *RecordMappingError.
func MapRecord(index int, raw gjson.Result) (Record, error) {
	if !raw.IsObject() {
		return Record{}, &RecordMappingError{Index: index, Err: errors.New("record is not an object")}
	}

	var errs *multierror.Error
	var rec Record

	name := raw.Get("name.common")
	if name.Type != gjson.String || name.Str == "" {
		errs = multierror.Append(errs, errors.New("name.common: missing or not a non-empty string"))
	} else {
		rec.Name = name.Str
	}

	cca2 := raw.Get("cca2")
	switch {
	case cca2.Type != gjson.String:
		errs = multierror.Append(errs, errors.New("cca2: missing or not a string"))
	case !isAlpha2(cca2.Str):
		errs = multierror.Append(errs, fmt.Errorf("cca2: %q is not a two letter code", cca2.Str))
	default:
		rec.Fields.ISO2 = cca2.Str
	}

	latlng := raw.Get("latlng")
	if !latlng.IsArray() {
		errs = multierror.Append(errs, errors.New("latlng: missing or not an array"))
	} else if coords := latlng.Array(); len(coords) != 2 {
		errs = multierror.Append(errs, fmt.Errorf("latlng: expected 2 values, got %d", len(coords)))
	} else if coords[0].Type != gjson.Number || coords[1].Type != gjson.Number {
		errs = multierror.Append(errs, errors.New("latlng: values must be numbers"))
	} else {
		rec.Fields.Lat = coords[0].Num
		rec.Fields.Long = coords[1].Num
	}

	optional := []struct {
		path string
		dst  *string
	}{
		{"cca3", &rec.Fields.ISO3},
		{"ccn3", &rec.Fields.NumericCode},
		{"region", &rec.Fields.Continent},
		{"subregion", &rec.Fields.Subregion},
	}
	for _, opt := range optional {
		v := raw.Get(opt.path)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if v.Type != gjson.String {
			errs = multierror.Append(errs, fmt.Errorf("%s: not a string", opt.path))
			continue
		}
		*opt.dst = v.Str
	}

	if err := errs.ErrorOrNil(); err != nil {
		return Record{}, &RecordMappingError{Index: index, Name: name.String(), Err: err}
	}
	return rec, nil
}

func isAlpha2(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
