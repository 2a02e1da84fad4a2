package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/briantkatch/paprika-mcp/internal/errors"
)

// Category is one recipe category. Categories form a parent/child
// hierarchy via ParentUID.
type Category struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	ParentUID string `json:"parent_uid"`
}

// Categories fetches the account's category list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	result, err := c.get(ctx, "/sync/categories/")
	if err != nil {
		return nil, err
	}

	var cats []Category
	if err := json.Unmarshal(result, &cats); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse,
			fmt.Errorf("decode categories: %w", err))
	}
	return cats, nil
}

// CategoryIndex provides name/UID translation for categories. Recipe
// records reference categories by UID; search and display need names.
type CategoryIndex struct {
	byUID  map[string]Category
	byName map[string]Category
}

// NewCategoryIndex builds lookup maps over a category list. Name lookup
// is case-insensitive.
func NewCategoryIndex(cats []Category) *CategoryIndex {
	idx := &CategoryIndex{
		byUID:  make(map[string]Category, len(cats)),
		byName: make(map[string]Category, len(cats)),
	}
	for _, cat := range cats {
		idx.byUID[cat.UID] = cat
		idx.byName[strings.ToLower(cat.Name)] = cat
	}
	return idx
}

// Names translates a list of category UIDs to their names. Unknown UIDs
// are passed through unchanged so stale references stay visible.
func (idx *CategoryIndex) Names(uids []string) []string {
	if len(uids) == 0 {
		return nil
	}
	names := make([]string, 0, len(uids))
	for _, uid := range uids {
		if cat, ok := idx.byUID[uid]; ok {
			names = append(names, cat.Name)
		} else {
			names = append(names, uid)
		}
	}
	return names
}

// UIDByName resolves a category name (case-insensitive) to its UID.
func (idx *CategoryIndex) UIDByName(name string) (string, bool) {
	cat, ok := idx.byName[strings.ToLower(name)]
	return cat.UID, ok
}
