// Package location maps a user-supplied identifier (admin code, free-text
// place name, IP, or coordinate pair) onto a canonical location usable as a
// cache key and as upstream request parameters.
package location

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoIdentifier is returned when a query carries no usable identifier.
var ErrNoIdentifier = errors.New("location: need one of areaCode, areaCn, ip, or lat+lng")

// UnknownCityError means a free-text name matched nothing in the area table.
type UnknownCityError struct {
	Name string
}

func (e *UnknownCityError) Error() string {
	return fmt.Sprintf("location: no admin code found for city %q", e.Name)
}

// Query holds the raw request identifiers, all optional.
type Query struct {
	AreaCode string
	AreaCn   string
	IP       string
	Lat      string
	Lng      string
}

// Location is a resolved identifier. Exactly one variant is populated; the
// zero value of the others means "not this kind".
type Location struct {
	AreaCode string
	AreaCn   string
	IP       string
	Lat      string
	Lng      string
}

// Key returns a stable cache key. The variant prefix keeps, say, a coordinate
// pair from colliding with a city name that happens to stringify the same.
// A name-resolved location also carries the admin code for the upstream
// request, so the name is checked first: the code alone means the caller
// supplied an adcode directly.
func (l Location) Key() string {
	switch {
	case l.AreaCn != "":
		return "city:" + l.AreaCn
	case l.AreaCode != "":
		return "adcode:" + l.AreaCode
	case l.IP != "":
		return "ip:" + l.IP
	default:
		return "geo:" + l.Lng + "," + l.Lat
	}
}

// Describe returns a human-readable label for calendar output and filenames.
func (l Location) Describe() string {
	switch {
	case l.AreaCn != "":
		return l.AreaCn
	case l.AreaCode != "":
		return "adcode:" + l.AreaCode
	case l.IP != "":
		return l.IP
	default:
		return l.Lng + "," + l.Lat
	}
}

// Resolver performs table lookups over the static administrative-area table.
type Resolver struct {
	areas []Area
}

func NewResolver() *Resolver {
	return &Resolver{areas: areaTable}
}

// Resolve picks the highest-priority identifier present in q (admin code >
// city name > IP > coordinates) and ignores the rest. A free-text name is
// resolved to its admin code via the area table.
func (r *Resolver) Resolve(q Query) (Location, error) {
	switch {
	case q.AreaCode != "":
		return Location{AreaCode: q.AreaCode}, nil
	case q.AreaCn != "":
		area, ok := r.match(q.AreaCn)
		if !ok {
			return Location{}, &UnknownCityError{Name: q.AreaCn}
		}
		return Location{AreaCn: area.Name, AreaCode: area.Code}, nil
	case q.IP != "":
		return Location{IP: q.IP}, nil
	case q.Lat != "" && q.Lng != "":
		return Location{Lat: q.Lat, Lng: q.Lng}, nil
	default:
		return Location{}, ErrNoIdentifier
	}
}

// match finds the area for a free-text name. Exact match wins, then prefix,
// then substring; within a tier the lowest admin code is taken so results do
// not depend on table ordering.
func (r *Resolver) match(name string) (Area, bool) {
	var exact, prefix, substr []Area
	for _, a := range r.areas {
		switch {
		case a.Name == name:
			exact = append(exact, a)
		case strings.HasPrefix(a.Name, name):
			prefix = append(prefix, a)
		case strings.Contains(a.Name, name):
			substr = append(substr, a)
		}
	}
	for _, tier := range [][]Area{exact, prefix, substr} {
		if len(tier) == 0 {
			continue
		}
		sort.Slice(tier, func(i, j int) bool { return tier[i].Code < tier[j].Code })
		return tier[0], true
	}
	return Area{}, false
}

// Search returns all area names containing substr, mapped to their admin
// codes. An empty substr returns the whole table.
func (r *Resolver) Search(substr string) map[string]string {
	out := make(map[string]string)
	for _, a := range r.areas {
		if strings.Contains(a.Name, substr) {
			out[a.Name] = a.Code
		}
	}
	return out
}
