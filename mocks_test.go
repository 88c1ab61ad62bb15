package mfs32

// Hand-maintained in the shape mockgen would generate for readerAt, the
// narrow interface the teacher's own file.go mocks the same way:
//  mockgen -source=geometry.go -destination=mocks_test.go -package mfs32

import (
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockReaderAt is a mock of the readerAt interface.
type MockReaderAt struct {
	ctrl     *gomock.Controller
	recorder *MockReaderAtMockRecorder
}

// MockReaderAtMockRecorder is the mock recorder for MockReaderAt.
type MockReaderAtMockRecorder struct {
	mock *MockReaderAt
}

// NewMockReaderAt creates a new mock instance.
func NewMockReaderAt(ctrl *gomock.Controller) *MockReaderAt {
	mock := &MockReaderAt{ctrl: ctrl}
	mock.recorder = &MockReaderAtMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockReaderAt) EXPECT() *MockReaderAtMockRecorder {
	return m.recorder
}

// ReadAt mocks base method.
func (m *MockReaderAt) ReadAt(buf []byte, offset int64) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadAt", buf, offset)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReadAt indicates an expected call.
func (mr *MockReaderAtMockRecorder) ReadAt(buf, offset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadAt", reflect.TypeOf((*MockReaderAt)(nil).ReadAt), buf, offset)
}
