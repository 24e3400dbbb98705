package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// Master list keys understood by /api/setup.
const (
	KeyAssetNames  = "asset-names"
	KeyInstitutes  = "institutes"
	KeyDepartments = "departments"
)

var SetupKeys = []string{KeyAssetNames, KeyInstitutes, KeyDepartments}

func ValidSetupKey(key string) bool {
	for _, k := range SetupKeys {
		if k == key {
			return true
		}
	}
	return false
}

type setupEntry struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// ListSetup fetches one master list in backend order.
func (c *Client) ListSetup(ctx context.Context, creds Credentials, key string) ([]string, error) {
	raw, _, err := c.do(ctx, creds, http.MethodGet, "/api/setup/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, err
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrapf(err, "decode %s list", key)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// AddSetup adds a plain entry (institutes, departments).
func (c *Client) AddSetup(ctx context.Context, creds Credentials, key, name string) error {
	_, _, err := c.do(ctx, creds, http.MethodPost, "/api/setup/"+url.PathEscape(key), setupEntry{Name: name})
	return err
}

// AddAssetName adds a "Name:Category" pair; the backend composes the stored string.
func (c *Client) AddAssetName(ctx context.Context, creds Credentials, name, category string) error {
	_, _, err := c.do(ctx, creds, http.MethodPost, "/api/setup/"+KeyAssetNames, setupEntry{Name: name, Category: category})
	return err
}

// DeleteSetup removes the entry equal to value.
func (c *Client) DeleteSetup(ctx context.Context, creds Credentials, key, value string) error {
	_, _, err := c.do(ctx, creds, http.MethodDelete, "/api/setup/"+url.PathEscape(key)+"/"+url.PathEscape(value), nil)
	return err
}
