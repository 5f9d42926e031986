package domain

// RelayOutcome represents the result of relaying one inbound order
type RelayOutcome string

const (
	RelayOutcomeSubmitted        RelayOutcome = "submitted"
	RelayOutcomeAlreadySubmitted RelayOutcome = "already_submitted"
	RelayOutcomeVendorMismatch   RelayOutcome = "skipped_vendor_mismatch"
	RelayOutcomeOutOfStock       RelayOutcome = "skipped_out_of_stock"
)

// IsValid checks if the relay outcome is valid
func (o RelayOutcome) IsValid() bool {
	switch o {
	case RelayOutcomeSubmitted,
		RelayOutcomeAlreadySubmitted,
		RelayOutcomeVendorMismatch,
		RelayOutcomeOutOfStock:
		return true
	default:
		return false
	}
}

// IsSkip reports whether the outcome means no order was submitted in this call
func (o RelayOutcome) IsSkip() bool {
	return o == RelayOutcomeVendorMismatch || o == RelayOutcomeOutOfStock
}

// PackageType is the supplier-side flag for who handles fulfillment
type PackageType string

const (
	// PackageTypeStandard means the supplier only sources products
	PackageTypeStandard PackageType = "0"
	// PackageTypeFull means the supplier handles full order fulfillment
	PackageTypeFull PackageType = "1"
)

// ImportStep labels the stage an import item is in, used for failure reporting
type ImportStep string

const (
	ImportStepSearching          ImportStep = "searching"
	ImportStepResolvingLocation  ImportStep = "resolving_location"
	ImportStepResolvingInventory ImportStep = "resolving_inventory"
	ImportStepDeciding           ImportStep = "deciding"
	ImportStepWriting            ImportStep = "writing"
	ImportStepDone               ImportStep = "done"
	ImportStepFailed             ImportStep = "failed"
)
