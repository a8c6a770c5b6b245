package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short, human-friendly reference with a
// prefix. Used for receipt references shown on printed invoices.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)
	id, err := sidGenerator.Generate()
	if err != nil {
		return GenerateUUIDWithPrefix(prefix)
	}
	id = strings.ReplaceAll(id, "-", "")
	return fmt.Sprintf("%s%s", prefix, id)
}

// Entity ID prefixes
const (
	UUID_PREFIX_INVOICE           = "inv"
	UUID_PREFIX_INVOICE_LINE_ITEM = "item"
	UUID_PREFIX_PAYMENT           = "pay"
	UUID_PREFIX_MEMBER            = "mem"
	UUID_PREFIX_STAFF             = "staff"
	UUID_PREFIX_SERVICE           = "svc"
	UUID_PREFIX_BRANCH            = "branch"
	UUID_PREFIX_RECEIPT           = "rcpt_"
)
