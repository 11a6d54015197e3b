package digester

// ExtractDigestForTest exposes extractDigest.
var ExtractDigestForTest = extractDigest

// ToolInvocationForTest exposes toolInvocation.
var ToolInvocationForTest = toolInvocation
