// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package models holds the rows persisted by the repository.
package models
