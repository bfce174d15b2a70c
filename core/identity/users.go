package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// User is an identity record in the wire format the service consumes.
//
// On input the reference fields (PatronGroup, PreferredContactTypeID and
// each address's AddressTypeID) carry human-readable names; the importer
// translates them into service-internal identifiers before submission.
type User struct {
	// ID is the service-assigned identifier. Empty for records that have
	// not been created yet; the importer generates one client-side before
	// a create call.
	ID string `json:"id,omitempty"`

	// Username is the login name registered for the user.
	Username string `json:"username,omitempty"`

	// ExternalSystemID is the caller-supplied reconciliation key.
	ExternalSystemID string `json:"externalSystemId"`

	// Barcode is the library card barcode.
	Barcode string `json:"barcode,omitempty"`

	// Active indicates whether the user may currently use services.
	Active bool `json:"active"`

	// PatronGroup is the patron group (name on input, id after translation).
	PatronGroup string `json:"patronGroup,omitempty"`

	// ExpirationDate is the account expiration date, if any.
	ExpirationDate string `json:"expirationDate,omitempty"`

	// Personal holds name, contact and address data.
	Personal *Personal `json:"personal,omitempty"`
}

// Personal holds the personal data block of a user record.
type Personal struct {
	LastName               string    `json:"lastName,omitempty"`
	FirstName              string    `json:"firstName,omitempty"`
	MiddleName             string    `json:"middleName,omitempty"`
	Email                  string    `json:"email,omitempty"`
	Phone                  string    `json:"phone,omitempty"`
	MobilePhone            string    `json:"mobilePhone,omitempty"`
	PreferredContactTypeID string    `json:"preferredContactTypeId,omitempty"`
	Addresses              []Address `json:"addresses,omitempty"`
}

// Address is a postal address attached to a user record.
type Address struct {
	ID             string `json:"id,omitempty"`
	CountryID      string `json:"countryId,omitempty"`
	AddressLine1   string `json:"addressLine1,omitempty"`
	AddressLine2   string `json:"addressLine2,omitempty"`
	City           string `json:"city,omitempty"`
	Region         string `json:"region,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	AddressTypeID  string `json:"addressTypeId,omitempty"`
	PrimaryAddress bool   `json:"primaryAddress,omitempty"`
}

type userListResponse struct {
	Users        []User `json:"users"`
	TotalRecords int    `json:"totalRecords"`
}

// QueryUsers runs a CQL query against the user store and returns the
// matching records.
func (c *client) QueryUsers(ctx context.Context, query string) ([]User, error) {
	p := "/users"
	req, err := c.newRequest(ctx, http.MethodGet, p, nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("query", query)
	req.URL.RawQuery = q.Encode()

	rb, err := c.do(req, "queryUsers")
	if err != nil {
		return nil, err
	}

	var out userListResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return nil, fmt.Errorf("queryUsers: parse response: %w", err)
	}
	return out.Users, nil
}

// CreateUser creates a new user record.
func (c *client) CreateUser(ctx context.Context, user User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("createUser: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/users", bytes.NewReader(b))
	if err != nil {
		return err
	}
	_, err = c.do(req, "createUser")
	return err
}

// UpdateUser replaces the record identified by user.ID.
func (c *client) UpdateUser(ctx context.Context, user User) error {
	if user.ID == "" {
		return fmt.Errorf("updateUser: record has no id")
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("updateUser: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/users/"+url.PathEscape(user.ID), bytes.NewReader(b))
	if err != nil {
		return err
	}
	_, err = c.do(req, "updateUser")
	return err
}

// DeleteUser removes the record identified by id.
func (c *client) DeleteUser(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req, "deleteUser")
	return err
}
