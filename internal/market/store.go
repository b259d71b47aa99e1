package market

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	devicePrefix   = "device/"
	orderPrefix    = "order/"
	templatePrefix = "template/"
)

// Store is the durable market datastore: one leveldb keyspace with JSON
// values under device/, order/ and template/ prefixes. The engine keeps its
// working set in memory and writes through on every mutation.
type Store struct {
	db *leveldb.DB
}

func OpenOrInitStore(p string) (*Store, error) {
	_, err := os.Stat(p)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		} else {
			if err := os.MkdirAll(p, 0700); err != nil {
				return nil, err
			}
		}
	}

	db, err := leveldb.OpenFile(p, nil)
	if err != nil {
		return nil, err
	}

	return &Store{db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) put(prefix, id string, v interface{}) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding '%s%s': %w", prefix, id, err)
	}
	if err = s.db.Put([]byte(prefix+id), bytes, nil); err != nil {
		return fmt.Errorf("writing '%s%s': %w", prefix, id, err)
	}
	return nil
}

func (s *Store) delete(prefix, id string) error {
	if err := s.db.Delete([]byte(prefix+id), nil); err != nil {
		return fmt.Errorf("deleting '%s%s': %w", prefix, id, err)
	}
	return nil
}

func (s *Store) PutDevice(device *models.Device) error {
	return s.put(devicePrefix, device.Id, device)
}

func (s *Store) PutOrder(order *models.RentalOrder) error {
	return s.put(orderPrefix, order.Id, order)
}

func (s *Store) PutTemplate(template *models.ApplicationTemplate) error {
	return s.put(templatePrefix, template.Id, template)
}

func (s *Store) DeleteTemplate(id string) error {
	return s.delete(templatePrefix, id)
}

// ListDevices loads every persisted device record.
func (s *Store) ListDevices() ([]*models.Device, error) {
	var devices []*models.Device
	iter := s.db.NewIterator(util.BytesPrefix([]byte(devicePrefix)), nil)
	for iter.Next() {
		var device models.Device
		if err := json.Unmarshal(iter.Value(), &device); err != nil {
			iter.Release()
			return nil, fmt.Errorf("decoding '%s': %w", string(iter.Key()), err)
		}
		devices = append(devices, &device)
	}
	iter.Release()
	return devices, iter.Error()
}

func (s *Store) ListOrders() ([]*models.RentalOrder, error) {
	var orders []*models.RentalOrder
	iter := s.db.NewIterator(util.BytesPrefix([]byte(orderPrefix)), nil)
	for iter.Next() {
		var order models.RentalOrder
		if err := json.Unmarshal(iter.Value(), &order); err != nil {
			iter.Release()
			return nil, fmt.Errorf("decoding '%s': %w", string(iter.Key()), err)
		}
		orders = append(orders, &order)
	}
	iter.Release()
	return orders, iter.Error()
}

func (s *Store) ListTemplates() ([]*models.ApplicationTemplate, error) {
	var templates []*models.ApplicationTemplate
	iter := s.db.NewIterator(util.BytesPrefix([]byte(templatePrefix)), nil)
	for iter.Next() {
		var template models.ApplicationTemplate
		if err := json.Unmarshal(iter.Value(), &template); err != nil {
			iter.Release()
			return nil, fmt.Errorf("decoding '%s': %w", string(iter.Key()), err)
		}
		templates = append(templates, &template)
	}
	iter.Release()
	return templates, iter.Error()
}

// Keys lists every stored key, trimmed of its prefix, mainly for CLI views.
func (s *Store) Keys(prefix string) ([]string, error) {
	var keys []string
	iter := s.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	for iter.Next() {
		keys = append(keys, strings.TrimPrefix(string(iter.Key()), prefix))
	}
	iter.Release()
	return keys, iter.Error()
}
