package main

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/marcmengel/fhicl-cpp/pset"
)

func marshalJSON(ps pset.ParameterSet) ([]byte, error) {
	return json.MarshalIndent(ps.ToAny(), "", "  ")
}

func uuidNew() string { return uuid.NewString() }
