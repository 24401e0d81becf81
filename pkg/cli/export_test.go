package cli

// RunWithWriter runs the application writing command output to w
var RunWithWriter = run

// LoadResponses is exported for testing
var LoadResponses = loadResponses

// GetIndexConfig is exported for testing
var GetIndexConfig = getIndexConfig
