package handler

import (
	"net/http"

	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/http/resp"
	"github.com/xy-planning-network/enumerate/http/router"
	"golang.org/x/text/language"
)

// An Enumeration is the JSON representation of an enumerate.Describer.
type Enumeration struct {
	Name    string            `json:"name"`
	Sort    enumerate.SortBy  `json:"sort"`
	Locale  string            `json:"locale,omitempty"`
	Entries []enumerate.Entry `json:"entries"`
}

type showQuery struct {
	Sort   enumerate.SortBy `schema:"sort" validate:"omitempty,enum"`
	Locale language.Tag     `schema:"locale"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	_ = h.resp.Json(w, r, resp.Data(h.reg.Names()))
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	d, err := h.reg.Lookup(router.Vars(r)["name"])
	if err != nil {
		h.resp.Err(w, r, err)
		return
	}

	q := showQuery{Sort: h.sort, Locale: h.locale}
	if err := h.parser.ParseQueryParams(r.URL.Query(), &q); err != nil {
		h.resp.Err(w, r, err)
		return
	}

	if q.Sort == "" {
		q.Sort = d.SortBy()
	}

	e := Enumeration{Name: d.Name(), Sort: q.Sort}
	if q.Locale == language.Und {
		e.Entries = d.Entries(q.Sort)
	} else {
		e.Locale = q.Locale.String()
		e.Entries = d.EntriesIn(q.Locale, q.Sort)
	}

	_ = h.resp.Json(w, r, resp.Data(e))
}
