package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"asset-scan/internal/backend"
	"asset-scan/internal/metrics"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SetupBackend is the slice of the backend client the master-data screen needs.
type SetupBackend interface {
	ListSetup(ctx context.Context, creds backend.Credentials, key string) ([]string, error)
	AddSetup(ctx context.Context, creds backend.Credentials, key, name string) error
	AddAssetName(ctx context.Context, creds backend.Credentials, name, category string) error
	DeleteSetup(ctx context.Context, creds backend.Credentials, key, value string) error
}

// Lists holds the three master lists keyed by setup key.
type Lists map[string][]string

func (l Lists) AssetNames() []string  { return l[backend.KeyAssetNames] }
func (l Lists) Institutes() []string  { return l[backend.KeyInstitutes] }
func (l Lists) Departments() []string { return l[backend.KeyDepartments] }

// Change is the outcome of a successful mutation and the refetched list.
type Change struct {
	Key     string
	Message string
	List    []string
}

type MasterDataService struct {
	Backend SetupBackend
}

// Load fetches the given lists (all three when none given) concurrently. A list
// that fails stays empty and contributes one message.
func (s *MasterDataService) Load(ctx context.Context, creds backend.Credentials, keys ...string) (Lists, []string, error) {
	if len(keys) == 0 {
		keys = backend.SetupKeys
	}

	var (
		mu       sync.Mutex
		lists    = Lists{}
		problems []string
		unauth   error
		g        errgroup.Group
	)
	for _, key := range keys {
		key := key
		lists[key] = []string{}
		g.Go(func() error {
			values, err := s.Backend.ListSetup(ctx, creds, key)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithError(err).Warnf("fetch %s failed", key)
				if backend.IsUnauthorized(err) {
					unauth = err
				}
				problems = append(problems, "Failed to fetch "+key)
				return nil
			}
			lists[key] = values
			return nil
		})
	}
	_ = g.Wait()

	if unauth != nil {
		return lists, problems, unauth
	}
	return lists, problems, nil
}

// Add appends a plain entry to institutes or departments.
func (s *MasterDataService) Add(ctx context.Context, creds backend.Credentials, key, value string) (Change, error) {
	if !backend.ValidSetupKey(key) || key == backend.KeyAssetNames {
		return Change{}, userError(fmt.Sprintf("Unknown list '%s'.", key), nil)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Change{}, userError("Value is required.", nil)
	}

	err := s.Backend.AddSetup(ctx, creds, key, value)
	metrics.SetupChanges.WithLabelValues(key, "add", outcome(err)).Inc()
	if err != nil {
		return Change{}, mutationError(err, "Failed to add value")
	}
	return s.refetch(ctx, creds, key, "Added to "+key)
}

// AddAssetName adds an asset name with its category; both are required.
func (s *MasterDataService) AddAssetName(ctx context.Context, creds backend.Credentials, name, category string) (Change, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" {
		return Change{}, userError("Asset Name and Category are both required.", nil)
	}

	err := s.Backend.AddAssetName(ctx, creds, name, category)
	metrics.SetupChanges.WithLabelValues(backend.KeyAssetNames, "add", outcome(err)).Inc()
	if err != nil {
		return Change{}, mutationError(err, "Failed to add asset")
	}
	return s.refetch(ctx, creds, backend.KeyAssetNames, "Asset and category added")
}

// Delete removes the entry exactly equal to value.
func (s *MasterDataService) Delete(ctx context.Context, creds backend.Credentials, key, value string) (Change, error) {
	if !backend.ValidSetupKey(key) {
		return Change{}, userError(fmt.Sprintf("Unknown list '%s'.", key), nil)
	}
	if value == "" {
		return Change{}, userError("Value is required.", nil)
	}

	err := s.Backend.DeleteSetup(ctx, creds, key, value)
	metrics.SetupChanges.WithLabelValues(key, "delete", outcome(err)).Inc()
	if err != nil {
		return Change{}, mutationError(err, "Failed to delete value")
	}
	return s.refetch(ctx, creds, key, fmt.Sprintf("Deleted '%s'", value))
}

// refetch reloads key after a mutation. The mutation already happened, so a
// failed reload keeps the success message and returns the fetch problem.
func (s *MasterDataService) refetch(ctx context.Context, creds backend.Credentials, key, msg string) (Change, error) {
	lists, problems, err := s.Load(ctx, creds, key)
	if err != nil {
		return Change{}, err
	}
	ch := Change{Key: key, Message: msg, List: lists[key]}
	if len(problems) > 0 {
		ch.Message = msg + ". " + strings.Join(problems, " ")
	}
	return ch, nil
}

func mutationError(err error, fallback string) error {
	if backend.IsNetwork(err) {
		return userError("Network error", err)
	}
	return userError(backend.Message(err, fallback), err)
}
