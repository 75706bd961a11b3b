package model

import (
	"bytes"
	"encoding/binary"
	vk "github.com/goki/vulkan"
	vm "local/vector_math"
	"log"
	"stl_viewer/stl"
	"unsafe"
)

// Vertex input bindings. Positions and normals live in two separate buffers
// so the mesh's flat arrays can be copied to the device as they are.
const (
	PositionBinding = 0
	NormalBinding   = 1
)

var vec3Stride = uint32(unsafe.Sizeof(vm.Vec3{}))

// Model is an imported mesh prepared for drawing as a non-indexed triangle list.
type Model struct {
	Mesh *stl.Mesh
	Name string
}

func NewModel(m *stl.Mesh, n string) *Model {
	return &Model{
		Name: n,
		Mesh: m,
	}
}

// VertexCount is the number of vertices to draw, three per triangle.
func (m *Model) VertexCount() uint32 {
	return uint32(3 * m.Mesh.TriangleCount())
}

// ModelPushConstantRange reports the push constant block the Model expects to get bound. For now only
// the model-view-projection matrix (4x4 float) is provided to the vertex stage.
func ModelPushConstantRange() vk.PushConstantRange {
	return vk.PushConstantRange{
		StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		Offset:     0,
		Size:       uint32(mat4Size),
	}
}

// GetVBufferSize returns the size required for keeping the positions of this model in device memory.
// Mainly used to determine the buffer size when calling in Code.createBuffer(size vk.DeviceSize, ...)
func (m *Model) GetVBufferSize() int {
	return int(vec3Stride) * 3 * m.Mesh.TriangleCount()
}

// GetVBufferBytes returns the raw bytes representing all vertex positions for this model.
// Mainly used to execute vk.Memcopy(..., src []byte) to move memory from CPU to GPU
func (m *Model) GetVBufferBytes() []byte {
	return rawBytes(m.Mesh.Vertices())
}

// GetNBufferSize returns the size of the normal buffer, which matches GetVBufferSize.
func (m *Model) GetNBufferSize() int {
	return int(vec3Stride) * 3 * m.Mesh.TriangleCount()
}

// GetNBufferBytes returns the raw bytes of the per vertex normals, parallel to GetVBufferBytes.
func (m *Model) GetNBufferBytes() []byte {
	return rawBytes(m.Mesh.Normals())
}

func GetVertexBindingDescriptions() []vk.VertexInputBindingDescription {
	return []vk.VertexInputBindingDescription{
		{
			Binding:   PositionBinding,
			Stride:    vec3Stride,
			InputRate: vk.VertexInputRateVertex,
		},
		{
			Binding:   NormalBinding,
			Stride:    vec3Stride,
			InputRate: vk.VertexInputRateVertex,
		},
	}
}

func GetVertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Location: 0,
			Binding:  PositionBinding,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   0,
		},
		{
			Location: 1,
			Binding:  NormalBinding,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   0,
		},
	}
}

// GetInputAssembly describes how the vertex stream is assembled, every three consecutive vertices
// form one triangle.
func GetInputAssembly() vk.PipelineInputAssemblyStateCreateInfo {
	return vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		PNext:                  nil,
		Flags:                  0,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}
}

// Release drops the mesh buffers once they were uploaded or the model is discarded.
func (m *Model) Release() {
	if m == nil {
		return
	}
	log.Printf("Releasing model %s", m.Name)
	m.Mesh.Release()
}

// rawBytes writes a given object as its little endian byte representation voiding all type information in
// the process, this is mainly used to be able to put data into vk.Memcopy
func rawBytes(p interface{}) []byte {
	buf := new(bytes.Buffer)
	err := binary.Write(buf, binary.LittleEndian, p)
	if err != nil {
		log.Printf("binary.Write failed: %s", err)
	}
	return buf.Bytes()
}
