// Package handler implements the query handler: it turns a parsed
// dns.Query into a dns.Response by applying the home-suffix rule, the
// RD-bit policy, and per-qtype dispatch against the record store or
// the local TXT synthesis table.
package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arlo-voss/homedns/internal/dns"
	"github.com/arlo-voss/homedns/internal/store"
)

// HomeSuffix is the literal label stripped from a qname's tail before
// store lookup, and restored (implicitly, by echoing the original
// qname) in every emitted RR.
const HomeSuffix = "home"

// txtTTL is the ttl synthesized TXT answers carry; they are never
// cached so there is no stored ttl to read back.
const txtTTL = 30

// Store is the subset of *store.Store the handler depends on.
type Store interface {
	Get(ctx context.Context, name string, kind dns.RecordKind) (dns.ResourceRecord, error)
}

// Handler resolves queries against a Store, synthesizing TXT answers
// locally.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// New builds a Handler. A nil logger falls back to slog.Default().
func New(s Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: s, logger: logger}
}

// Handle turns q into a Response: response init, rd=false rcode
// pre-set, and per-question home-suffix/dispatch/echo.
func (h *Handler) Handle(ctx context.Context, q dns.Query) dns.Response {
	hdr := dns.Header{
		ID:     q.Header.ID,
		QR:     true,
		Opcode: 0,
		AA:     false,
		TC:     false,
		RD:     q.Header.RD,
		RA:     true,
		RCode:  dns.NoError,
	}
	if !q.Header.RD {
		hdr.RCode = dns.NxDomain
	}

	resp := dns.Response{Header: hdr, Questions: q.Questions}

	for _, question := range q.Questions {
		h.dispatch(ctx, &resp, question)
	}
	return resp
}

func (h *Handler) dispatch(ctx context.Context, resp *dns.Response, q dns.Question) {
	originalName := q.QName
	lookupName := dns.StripSuffixLabel(q.QName, HomeSuffix)

	switch q.QType {
	case dns.KindA:
		h.dispatchAddress(ctx, resp, originalName, lookupName, dns.KindA)
	case dns.KindAAAA:
		h.dispatchAddress(ctx, resp, originalName, lookupName, dns.KindAAAA)
	case dns.KindTXT:
		for _, label := range splitLabels(q.QName) {
			resp.Answers = append(resp.Answers, dns.ResourceRecord{
				Name:  originalName,
				Kind:  dns.KindTXT,
				Class: dns.ClassIN,
				TTL:   txtTTL,
				RData: txtPayload(label),
			})
		}
	default:
		h.logger.Info("skipping unsupported qtype", "qname", q.QName, "qtype", uint16(q.QType))
	}
}

func (h *Handler) dispatchAddress(ctx context.Context, resp *dns.Response, originalName, lookupName string, kind dns.RecordKind) {
	if !resp.Header.RD {
		ar, err := h.store.Get(ctx, lookupName, dns.KindSOA)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				h.logger.Warn("store error on SOA lookup", "name", lookupName, "error", err)
			}
			return
		}
		ar.Name = originalName
		resp.Authority = append(resp.Authority, ar)
		return
	}

	rr, err := h.store.Get(ctx, lookupName, kind)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Warn("store error on lookup", "name", lookupName, "kind", kind, "error", err)
		}
		resp.Header.RCode = dns.NxDomain
		return
	}
	rr.Name = originalName
	resp.Answers = append(resp.Answers, rr)
}

// splitLabels returns qname's labels in order; the root name yields
// no labels and therefore no TXT answers.
func splitLabels(qname string) []string {
	if qname == "" {
		return nil
	}
	var labels []string
	start := 0
	for i := 0; i <= len(qname); i++ {
		if i == len(qname) || qname[i] == '.' {
			labels = append(labels, qname[start:i])
			start = i + 1
		}
	}
	return labels
}

func txtPayload(label string) []byte {
	switch label {
	case "version":
		return []byte(`"version=1.0"`)
	case "bind":
		return []byte(`"bind=hello"`)
	default:
		return []byte("unknown=unknown")
	}
}
