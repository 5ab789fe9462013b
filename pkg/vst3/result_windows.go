package vst3

// Result codes returned to the host. Windows builds of the SDK use the COM
// HRESULT values.
const (
	ResultOK              = 0
	ResultFalse           = 1
	ResultInvalidArgument = -0x7FF8FFA9 // E_INVALIDARG 0x80070057
	ResultNotImplemented  = -0x7FFFBFFF // E_NOTIMPL 0x80004001
)
