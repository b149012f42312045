// Package shader dispatches shader sources to the external SPIR-V compilers.
//
// A shader named N is looked up as glsl/N and hlsl/N under the working
// directory. Each source that exists is compiled independently: GLSL with
// glslang, HLSL with dxc. The stage keyword picks the dxc target profile and
// decides whether glslang needs the SPIR-V 1.4 environment.
package shader
