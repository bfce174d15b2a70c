package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type addressTypeListResponse struct {
	AddressTypes []struct {
		ID          string `json:"id"`
		AddressType string `json:"addressType"`
	} `json:"addressTypes"`
	TotalRecords int `json:"totalRecords"`
}

type patronGroupListResponse struct {
	UserGroups []struct {
		ID    string `json:"id"`
		Group string `json:"group"`
	} `json:"usergroups"`
	TotalRecords int `json:"totalRecords"`
}

// AddressTypes fetches the address-type reference table as a name -> id map.
func (c *client) AddressTypes(ctx context.Context) (map[string]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/addresstypes", nil)
	if err != nil {
		return nil, err
	}
	rb, err := c.do(req, "addressTypes")
	if err != nil {
		return nil, err
	}

	var out addressTypeListResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return nil, fmt.Errorf("addressTypes: parse response: %w", err)
	}

	table := make(map[string]string, len(out.AddressTypes))
	for _, at := range out.AddressTypes {
		table[at.AddressType] = at.ID
	}
	return table, nil
}

// PatronGroups fetches the patron-group reference table as a name -> id map.
func (c *client) PatronGroups(ctx context.Context) (map[string]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/groups", nil)
	if err != nil {
		return nil, err
	}
	rb, err := c.do(req, "patronGroups")
	if err != nil {
		return nil, err
	}

	var out patronGroupListResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return nil, fmt.Errorf("patronGroups: parse response: %w", err)
	}

	table := make(map[string]string, len(out.UserGroups))
	for _, g := range out.UserGroups {
		table[g.Group] = g.ID
	}
	return table, nil
}
