package persistence

import (
	"errors"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
	"github.com/flarexio/technozen/persistence/db"
	"github.com/flarexio/technozen/persistence/file"
	"github.com/flarexio/technozen/persistence/inmem"
	"github.com/flarexio/technozen/persistence/kv"
)

var ErrDriverNotSupported = errors.New("driver not supported")

func NewEnquiryRepository(cfg conf.Persistence) (enquiry.Repository, error) {
	if cfg.InMem && cfg.Driver == conf.JSON {
		cfg.Driver = conf.InMem
	}

	switch cfg.Driver {
	case conf.JSON:
		return file.NewEnquiryRepository(cfg)
	case conf.SQLite:
		return db.NewEnquiryRepository(cfg)
	case conf.BadgerDB:
		return kv.NewEnquiryRepository(cfg)
	case conf.InMem:
		return inmem.NewEnquiryRepository()
	default:
		return nil, ErrDriverNotSupported
	}
}

func NewAdmissionRepository(cfg conf.Persistence) (admission.Repository, error) {
	if cfg.InMem && cfg.Driver == conf.JSON {
		cfg.Driver = conf.InMem
	}

	switch cfg.Driver {
	case conf.JSON:
		return file.NewAdmissionRepository(cfg)
	case conf.SQLite:
		return db.NewAdmissionRepository(cfg)
	case conf.BadgerDB:
		return kv.NewAdmissionRepository(cfg)
	case conf.InMem:
		return inmem.NewAdmissionRepository()
	default:
		return nil, ErrDriverNotSupported
	}
}
