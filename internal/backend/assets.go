package backend

import (
	"context"
	"net/http"
	"net/url"
)

// AssetByRegistration fetches the record whose registration number is reg.
// The whole number is one path segment, so its slashes travel as %2F.
func (c *Client) AssetByRegistration(ctx context.Context, creds Credentials, reg string) (Record, error) {
	raw, _, err := c.do(ctx, creds, http.MethodGet, "/api/assets/by-reg/"+url.PathEscape(reg), nil)
	if err != nil {
		return Record{}, err
	}
	return ParseRecord(raw)
}

// UpdateAsset replaces the fields of the asset with internal id and returns the stored record.
// A 2xx answer with an empty or non-object body yields a zero Record.
func (c *Client) UpdateAsset(ctx context.Context, creds Credentials, id string, payload any) (Record, error) {
	raw, _, err := c.do(ctx, creds, http.MethodPut, "/api/assets/"+url.PathEscape(id), payload)
	if err != nil {
		return Record{}, err
	}
	rec, perr := ParseRecord(raw)
	if perr != nil {
		return Record{}, nil
	}
	return rec, nil
}

// UpdateByRegistration is the bulk import write. The registration number is sent
// as path segments, matching how the backend routes it.
func (c *Client) UpdateByRegistration(ctx context.Context, creds Credentials, reg string, payload any) error {
	_, _, err := c.do(ctx, creds, http.MethodPut, "/api/assets/update-by-registration/"+escapeSegments(reg), payload)
	return err
}
