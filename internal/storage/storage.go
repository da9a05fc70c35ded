// Package storage persists per-party bot state: disabled commands and a
// bounded command history.
package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit = 20

// Storage wraps the datastore with party-keyed records.
type Storage struct {
	ds *datastore.DataStore
}

// CommandHistoryRecord is one executed command.
type CommandHistoryRecord struct {
	PartyID  string    `json:"party_id"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Command  string    `json:"command"`
	Datetime time.Time `json:"datetime"`
}

// Record is everything stored for one party.
type Record struct {
	DisabledCommands    []string               `json:"disabled_commands,omitempty"`
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history,omitempty"`
}

// New opens (or creates) the datastore file at filePath.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying datastore.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// getOrCreatePartyRecord fetches the record for a party, creating an empty
// one on first use. The datastore hands values back as decoded JSON, so the
// round trip through json re-types them.
func (s *Storage) getOrCreatePartyRecord(partyID string) (*Record, error) {
	data, exists := s.ds.Get(partyID)
	if !exists {
		record := &Record{}
		s.ds.Add(partyID, record)
		return record, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling record: %w", err)
	}
	return &record, nil
}

func (s *Storage) savePartyRecord(partyID string, record *Record) {
	s.ds.Add(partyID, record)
}

// IsCommandDisabled reports whether name is disabled for the party.
func (s *Storage) IsCommandDisabled(partyID, name string) (bool, error) {
	record, err := s.getOrCreatePartyRecord(partyID)
	if err != nil {
		return false, err
	}
	return slices.Contains(record.DisabledCommands, name), nil
}

// SetCommandDisabled flips the disabled flag for name in the party.
func (s *Storage) SetCommandDisabled(partyID, name string, disabled bool) error {
	record, err := s.getOrCreatePartyRecord(partyID)
	if err != nil {
		return err
	}
	has := slices.Contains(record.DisabledCommands, name)
	switch {
	case disabled && !has:
		record.DisabledCommands = append(record.DisabledCommands, name)
	case !disabled && has:
		record.DisabledCommands = slices.DeleteFunc(record.DisabledCommands, func(n string) bool {
			return n == name
		})
	default:
		return nil
	}
	s.savePartyRecord(partyID, record)
	return nil
}

// LogCommand appends a history record, trimming to the newest entries.
func (s *Storage) LogCommand(partyID, userID, username, command string) error {
	record, err := s.getOrCreatePartyRecord(partyID)
	if err != nil {
		return err
	}
	record.CommandsHistoryList = append(record.CommandsHistoryList, CommandHistoryRecord{
		PartyID:  partyID,
		UserID:   userID,
		Username: username,
		Command:  command,
		Datetime: time.Now().UTC(),
	})
	if n := len(record.CommandsHistoryList); n > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[n-commandHistoryLimit:]
	}
	s.savePartyRecord(partyID, record)
	return nil
}

// CommandHistory returns the stored history, oldest first.
func (s *Storage) CommandHistory(partyID string) ([]CommandHistoryRecord, error) {
	record, err := s.getOrCreatePartyRecord(partyID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}
