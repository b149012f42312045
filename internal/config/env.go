package config

const (
	EnvGLSLCompiler = "ASSETPIPE_GLSLANG"
	EnvHLSLCompiler = "ASSETPIPE_DXC"
	EnvVulkanSDK    = "VULKAN_SDK"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv reads the explicit compiler overrides.
func FromEnv(lookup LookupFunc) Model {
	var m Model
	if v, ok := lookup(EnvGLSLCompiler); ok {
		m.GLSLCompiler = v
	}
	if v, ok := lookup(EnvHLSLCompiler); ok {
		m.HLSLCompiler = v
	}
	return m
}

// FromSDK derives compiler paths from VULKAN_SDK when it is set.
func FromSDK(lookup LookupFunc) Model {
	v, _ := lookup(EnvVulkanSDK)
	return SDKTools(v)
}
