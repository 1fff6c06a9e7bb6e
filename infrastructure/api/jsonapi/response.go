// Package jsonapi provides JSON:API style documents for API responses.
package jsonapi

import (
	"strconv"
)

// Document represents a JSON:API top-level document.
// See: https://jsonapi.org/format/#document-structure
type Document struct {
	Data  any    `json:"data"`
	Meta  *Meta  `json:"meta,omitempty"`
	Links *Links `json:"links,omitempty"`
}

// Meta holds non-standard meta-information about a document.
type Meta map[string]any

// Links holds links associated with a document or resource.
type Links struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// Resource represents a JSON:API resource object.
// See: https://jsonapi.org/format/#document-resource-objects
type Resource struct {
	Type          string        `json:"type"`
	ID            string        `json:"id"`
	Attributes    any           `json:"attributes"`
	Relationships Relationships `json:"relationships,omitempty"`
}

// Relationships maps relationship names to their data.
type Relationships map[string]*Relationship

// Relationship points at a related resource.
type Relationship struct {
	Data *ResourceIdentifier `json:"data"`
}

// ResourceIdentifier identifies a resource without full attributes.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// NewResource creates a resource with a numeric id.
func NewResource(resourceType string, id int64, attrs any) *Resource {
	return &Resource{
		Type:       resourceType,
		ID:         strconv.FormatInt(id, 10),
		Attributes: attrs,
	}
}

// Relate adds a to-one relationship. Zero ids are skipped.
func (r *Resource) Relate(name, resourceType string, id int64) *Resource {
	if id == 0 {
		return r
	}
	if r.Relationships == nil {
		r.Relationships = Relationships{}
	}
	r.Relationships[name] = &Relationship{
		Data: &ResourceIdentifier{Type: resourceType, ID: strconv.FormatInt(id, 10)},
	}
	return r
}

// NewSingleResponse creates a JSON:API document with a single resource.
func NewSingleResponse(resource *Resource) *Document {
	return &Document{
		Data: resource,
	}
}

// NewListResponse creates a JSON:API document with a list of resources.
// A nil list encodes as an empty array.
func NewListResponse(resources []*Resource) *Document {
	if resources == nil {
		resources = []*Resource{}
	}
	return &Document{
		Data: resources,
	}
}

// WithPage attaches pagination meta and links.
func (d *Document) WithPage(meta *Meta, links *Links) *Document {
	d.Meta = meta
	d.Links = links
	return d
}
