// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response envelopes of the remote pass API. Only the fields the client
// reads are declared.

type SharesResponse struct {
	Code   int     `json:"Code"`
	Shares []Share `json:"Shares"`
}

type LastEventIDResponse struct {
	Code    int    `json:"Code"`
	EventID string `json:"EventID"`
}

type EventsResponse struct {
	Code   int        `json:"Code"`
	Events SyncEvents `json:"Events"`
}

type ShareKeysPage struct {
	Keys  []ShareKey `json:"Keys"`
	Total int        `json:"Total"`
}

type ShareKeysResponse struct {
	Code      int           `json:"Code"`
	ShareKeys ShareKeysPage `json:"ShareKeys"`
}

type ItemsPage struct {
	RevisionsData []Item `json:"RevisionsData"`
	Total         int    `json:"Total"`
}

type ItemsResponse struct {
	Code  int       `json:"Code"`
	Items ItemsPage `json:"Items"`
}

// ErrorResponse is the body the remote sends along non-2xx statuses.
type ErrorResponse struct {
	Code  int    `json:"Code"`
	Error string `json:"Error"`
}

// PageRequest selects one page of a paginated listing. Page is zero-based.
type PageRequest struct {
	Page     int
	PageSize int
}
