// Package mocks holds hand-written gomock-style doubles for the
// datastore.Backend/Iterator contract, in the shape mockgen would
// generate (the teacher's snmp package mocks net.PacketConn the same
// way, via golang/mock/gomock) — written by hand here since mockgen
// itself isn't run as part of this build.
package mocks

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/damianoneill/netconf-yang-server/datastore"
)

// MockBackend is a mock of the datastore.Backend interface.
type MockBackend struct {
	ctrl     *gomock.Controller
	recorder *MockBackendMockRecorder
}

// MockBackendMockRecorder is the mock recorder for MockBackend.
type MockBackendMockRecorder struct {
	mock *MockBackend
}

// NewMockBackend creates a new mock instance.
func NewMockBackend(ctrl *gomock.Controller) *MockBackend {
	mock := &MockBackend{ctrl: ctrl}
	mock.recorder = &MockBackendMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBackend) EXPECT() *MockBackendMockRecorder {
	return m.recorder
}

func (m *MockBackend) SwitchDatastore(ds datastore.Datastore) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SwitchDatastore", ds)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockBackendMockRecorder) SwitchDatastore(ds interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SwitchDatastore", reflect.TypeOf((*MockBackend)(nil).SwitchDatastore), ds)
}

func (m *MockBackend) Refresh() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Refresh")
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockBackendMockRecorder) Refresh() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Refresh", reflect.TypeOf((*MockBackend)(nil).Refresh))
}

func (m *MockBackend) Items(xpath string) (datastore.Iterator, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Items", xpath)
	ret0, _ := ret[0].(datastore.Iterator)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockBackendMockRecorder) Items(xpath interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Items", reflect.TypeOf((*MockBackend)(nil).Items), xpath)
}

func (m *MockBackend) CandidateDiverged() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CandidateDiverged")
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockBackendMockRecorder) CandidateDiverged() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CandidateDiverged", reflect.TypeOf((*MockBackend)(nil).CandidateDiverged))
}

// MockIterator is a mock of the datastore.Iterator interface.
type MockIterator struct {
	ctrl     *gomock.Controller
	recorder *MockIteratorMockRecorder
}

// MockIteratorMockRecorder is the mock recorder for MockIterator.
type MockIteratorMockRecorder struct {
	mock *MockIterator
}

// NewMockIterator creates a new mock instance.
func NewMockIterator(ctrl *gomock.Controller) *MockIterator {
	mock := &MockIterator{ctrl: ctrl}
	mock.recorder = &MockIteratorMockRecorder{mock}
	return mock
}

func (m *MockIterator) EXPECT() *MockIteratorMockRecorder {
	return m.recorder
}

func (m *MockIterator) Next() (datastore.Value, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Next")
	ret0, _ := ret[0].(datastore.Value)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockIteratorMockRecorder) Next() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Next", reflect.TypeOf((*MockIterator)(nil).Next))
}

func (m *MockIterator) Close() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Close")
}

func (mr *MockIteratorMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockIterator)(nil).Close))
}
