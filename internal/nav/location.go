// Package nav models the canonical search location: the single
// authoritative "what is currently searched" value.
//
// The web frontend this client replaces kept the current query in the
// URL (?q=). Here the same contract holds as an explicit value with
// one writer (Submit) and one reader (the fetch orchestrator), and the
// URL form survives as the serialization used for deep links:
//
//	recengine '/?q=Headphones'
package nav

import "net/url"

// Location is the canonical navigable state of the home view. The zero
// Location means no active search.
type Location struct {
	Query string
}

// IsZero reports whether no search is active.
func (l Location) IsZero() bool {
	return l.Query == ""
}

// String serializes the location as a home-route URL. A zero location
// renders as just "/".
func (l Location) String() string {
	if l.Query == "" {
		return "/"
	}
	v := url.Values{}
	v.Set("q", l.Query)
	return "/?" + v.Encode()
}

// Parse reconstructs a Location from its URL form. Anything that does
// not parse, or has no q parameter, is the zero Location — a cold load
// with a bad link lands on the plain home view.
func Parse(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}
	}
	return Location{Query: u.Query().Get("q")}
}

// Submit applies a search submission to the current location and
// reports whether the location changed.
//
// An empty query is a no-op: it neither clears nor replaces an active
// search. Resubmitting the exact current query returns changed=false —
// the caller already has (or is fetching) results for it, so there is
// no new information and no duplicate fetch is needed.
func Submit(cur Location, query string) (Location, bool) {
	if query == "" {
		return cur, false
	}
	if query == cur.Query {
		return cur, false
	}
	return Location{Query: query}, true
}
