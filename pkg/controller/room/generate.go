package room

//go:generate go run github.com/deepmap/oapi-codegen/v2/cmd/oapi-codegen -config config.yaml room.yaml
