package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Road vertex shader: world-space quads for the surface and markings.
const roadVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aUV;

uniform mat4 uViewProj;
uniform vec3 uEye;

out vec2 vUV;
out vec3 vWorld;
out float vDist;

void main() {
    vUV = aUV;
    vWorld = aPos;
    vDist = distance(aPos, uEye);
    gl_Position = uViewProj * vec4(aPos, 1.0);
}
` + "\x00"

// Road fragment shader: asphalt with per-segment roughness/reflection, sky
// reflection, lightning bounce and exponential-squared fog. Falls back to
// flat shading until the textures arrive.
const roadFragSrc = `#version 410 core

uniform sampler2D uAlbedo;
uniform sampler2D uNormal;
uniform int uTextured;
uniform vec3 uTint;
uniform float uRoughness;
uniform float uReflection;
uniform vec3 uSky;
uniform float uFog;
uniform vec3 uEye;
uniform float uFlash;

in vec2 vUV;
in vec3 vWorld;
in float vDist;
out vec4 FragColor;

void main() {
    vec3 base = uTint;
    vec3 n = vec3(0.0, 1.0, 0.0);
    if (uTextured == 1) {
        base *= texture(uAlbedo, vUV).rgb * 3.0;
        vec3 tn = texture(uNormal, vUV).xyz * 2.0 - 1.0;
        n = normalize(vec3(tn.x * 0.5, tn.z, tn.y * 0.5));
    }

    vec3 v = normalize(uEye - vWorld);
    vec3 l = normalize(vec3(0.3, 1.0, 0.4));
    float diff = max(dot(n, l), 0.0) * 0.7 + 0.3;

    vec3 h = normalize(l + v);
    float shin = mix(128.0, 4.0, uRoughness);
    float spec = pow(max(dot(n, h), 0.0), shin) * (1.0 - uRoughness);
    float fres = pow(1.0 - max(dot(n, v), 0.0), 5.0);

    vec3 col = base * diff + vec3(spec) + uSky * uReflection * mix(0.04, 1.0, fres);
    col += vec3(uFlash * 0.5 * uReflection);

    float f = exp(-pow(uFog * vDist, 2.0));
    FragColor = vec4(mix(uSky, col, f), 1.0);
}
` + "\x00"

// Rain vertex shader: point sprites offset to follow the car.
const rainVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in float aSize;
layout(location = 2) in vec4 aColor;

uniform mat4 uViewProj;
uniform vec3 uOffset;
uniform float uPointScale;

out vec4 vColor;

void main() {
    gl_Position = uViewProj * vec4(aPos + uOffset, 1.0);
    gl_PointSize = max(1.0, aSize * uPointScale / max(gl_Position.w, 0.001));
    vColor = aColor;
}
` + "\x00"

// Rain fragment shader: a thin vertical streak inside the point.
const rainFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    vec2 c = gl_PointCoord - 0.5;
    float a = (1.0 - smoothstep(0.05, 0.12, abs(c.x))) * (1.0 - 2.0 * abs(c.y));
    if (a <= 0.0) discard;
    FragColor = vec4(vColor.rgb, vColor.a * a);
}
` + "\x00"

// Overlay shaders: flat 2D triangles in NDC for the lightning flash and the
// wind gauge.
const overlayVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const overlayFragSrc = `#version 410 core

uniform vec4 uColor;
out vec4 FragColor;

void main() {
    FragColor = uColor;
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
