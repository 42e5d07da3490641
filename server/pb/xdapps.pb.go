// source: xdapps.proto

package pb

import (
	context "context"

	proto "github.com/golang/protobuf/proto"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// 消息按golang/protobuf的struct tag编解码
const _ = proto.ProtoPackageIsVersion3

type ReqHeader struct {
	LogId    string `protobuf:"bytes,1,opt,name=log_id,json=logId,proto3" json:"log_id,omitempty"`
	SelfName string `protobuf:"bytes,2,opt,name=self_name,json=selfName,proto3" json:"self_name,omitempty"`
}

func (m *ReqHeader) Reset()         { *m = ReqHeader{} }
func (m *ReqHeader) String() string { return proto.CompactTextString(m) }
func (*ReqHeader) ProtoMessage()    {}

func (m *ReqHeader) GetLogId() string {
	if m != nil {
		return m.LogId
	}
	return ""
}

func (m *ReqHeader) GetSelfName() string {
	if m != nil {
		return m.SelfName
	}
	return ""
}

type RespHeader struct {
	LogId   string `protobuf:"bytes,1,opt,name=log_id,json=logId,proto3" json:"log_id,omitempty"`
	Error   int32  `protobuf:"varint,2,opt,name=error,proto3" json:"error,omitempty"`
	ErrMsg  string `protobuf:"bytes,3,opt,name=err_msg,json=errMsg,proto3" json:"err_msg,omitempty"`
	TraceId string `protobuf:"bytes,4,opt,name=trace_id,json=traceId,proto3" json:"trace_id,omitempty"`
}

func (m *RespHeader) Reset()         { *m = RespHeader{} }
func (m *RespHeader) String() string { return proto.CompactTextString(m) }
func (*RespHeader) ProtoMessage()    {}

func (m *RespHeader) GetLogId() string {
	if m != nil {
		return m.LogId
	}
	return ""
}

func (m *RespHeader) GetError() int32 {
	if m != nil {
		return m.Error
	}
	return 0
}

func (m *RespHeader) GetErrMsg() string {
	if m != nil {
		return m.ErrMsg
	}
	return ""
}

func (m *RespHeader) GetTraceId() string {
	if m != nil {
		return m.TraceId
	}
	return ""
}

type DappInfo struct {
	Id          string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Name        string `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Description string `protobuf:"bytes,3,opt,name=description,proto3" json:"description,omitempty"`
	Version     string `protobuf:"bytes,4,opt,name=version,proto3" json:"version,omitempty"`
	Author      string `protobuf:"bytes,5,opt,name=author,proto3" json:"author,omitempty"`
	IconUrl     string `protobuf:"bytes,6,opt,name=icon_url,json=iconUrl,proto3" json:"icon_url,omitempty"`
}

func (m *DappInfo) Reset()         { *m = DappInfo{} }
func (m *DappInfo) String() string { return proto.CompactTextString(m) }
func (*DappInfo) ProtoMessage()    {}

func (m *DappInfo) GetId() string {
	if m != nil {
		return m.Id
	}
	return ""
}

func (m *DappInfo) GetName() string {
	if m != nil {
		return m.Name
	}
	return ""
}

func (m *DappInfo) GetDescription() string {
	if m != nil {
		return m.Description
	}
	return ""
}

func (m *DappInfo) GetVersion() string {
	if m != nil {
		return m.Version
	}
	return ""
}

func (m *DappInfo) GetAuthor() string {
	if m != nil {
		return m.Author
	}
	return ""
}

func (m *DappInfo) GetIconUrl() string {
	if m != nil {
		return m.IconUrl
	}
	return ""
}

type ListDappsReq struct {
	Header *ReqHeader `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
}

func (m *ListDappsReq) Reset()         { *m = ListDappsReq{} }
func (m *ListDappsReq) String() string { return proto.CompactTextString(m) }
func (*ListDappsReq) ProtoMessage()    {}

func (m *ListDappsReq) GetHeader() *ReqHeader {
	if m != nil {
		return m.Header
	}
	return nil
}

type ListDappsResp struct {
	Header *RespHeader `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
	Dapps  []*DappInfo `protobuf:"bytes,2,rep,name=dapps,proto3" json:"dapps,omitempty"`
}

func (m *ListDappsResp) Reset()         { *m = ListDappsResp{} }
func (m *ListDappsResp) String() string { return proto.CompactTextString(m) }
func (*ListDappsResp) ProtoMessage()    {}

func (m *ListDappsResp) GetHeader() *RespHeader {
	if m != nil {
		return m.Header
	}
	return nil
}

func (m *ListDappsResp) GetDapps() []*DappInfo {
	if m != nil {
		return m.Dapps
	}
	return nil
}

type RegistrarAddressReq struct {
	Header *ReqHeader `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
}

func (m *RegistrarAddressReq) Reset()         { *m = RegistrarAddressReq{} }
func (m *RegistrarAddressReq) String() string { return proto.CompactTextString(m) }
func (*RegistrarAddressReq) ProtoMessage()    {}

func (m *RegistrarAddressReq) GetHeader() *ReqHeader {
	if m != nil {
		return m.Header
	}
	return nil
}

type RegistrarAddressResp struct {
	Header  *RespHeader `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
	Address string      `protobuf:"bytes,2,opt,name=address,proto3" json:"address,omitempty"`
}

func (m *RegistrarAddressResp) Reset()         { *m = RegistrarAddressResp{} }
func (m *RegistrarAddressResp) String() string { return proto.CompactTextString(m) }
func (*RegistrarAddressResp) ProtoMessage()    {}

func (m *RegistrarAddressResp) GetHeader() *RespHeader {
	if m != nil {
		return m.Header
	}
	return nil
}

func (m *RegistrarAddressResp) GetAddress() string {
	if m != nil {
		return m.Address
	}
	return ""
}

type ContractCallReq struct {
	Header *ReqHeader `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
	To     string     `protobuf:"bytes,2,opt,name=to,proto3" json:"to,omitempty"`
	Data   []byte     `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *ContractCallReq) Reset()         { *m = ContractCallReq{} }
func (m *ContractCallReq) String() string { return proto.CompactTextString(m) }
func (*ContractCallReq) ProtoMessage()    {}

func (m *ContractCallReq) GetHeader() *ReqHeader {
	if m != nil {
		return m.Header
	}
	return nil
}

func (m *ContractCallReq) GetTo() string {
	if m != nil {
		return m.To
	}
	return ""
}

func (m *ContractCallReq) GetData() []byte {
	if m != nil {
		return m.Data
	}
	return nil
}

type ContractCallResp struct {
	Header *RespHeader `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
	Output []byte      `protobuf:"bytes,2,opt,name=output,proto3" json:"output,omitempty"`
}

func (m *ContractCallResp) Reset()         { *m = ContractCallResp{} }
func (m *ContractCallResp) String() string { return proto.CompactTextString(m) }
func (*ContractCallResp) ProtoMessage()    {}

func (m *ContractCallResp) GetHeader() *RespHeader {
	if m != nil {
		return m.Header
	}
	return nil
}

func (m *ContractCallResp) GetOutput() []byte {
	if m != nil {
		return m.Output
	}
	return nil
}

const _ = grpc.SupportPackageIsVersion6

// DappsControlClient is the client API for DappsControl service.
type DappsControlClient interface {
	ListDapps(ctx context.Context, in *ListDappsReq, opts ...grpc.CallOption) (*ListDappsResp, error)
	RegistrarAddress(ctx context.Context, in *RegistrarAddressReq, opts ...grpc.CallOption) (*RegistrarAddressResp, error)
	ContractCall(ctx context.Context, in *ContractCallReq, opts ...grpc.CallOption) (*ContractCallResp, error)
}

type dappsControlClient struct {
	cc grpc.ClientConnInterface
}

func NewDappsControlClient(cc grpc.ClientConnInterface) DappsControlClient {
	return &dappsControlClient{cc}
}

func (c *dappsControlClient) ListDapps(ctx context.Context, in *ListDappsReq, opts ...grpc.CallOption) (*ListDappsResp, error) {
	out := new(ListDappsResp)
	err := c.cc.Invoke(ctx, "/xdapps.DappsControl/ListDapps", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dappsControlClient) RegistrarAddress(ctx context.Context, in *RegistrarAddressReq, opts ...grpc.CallOption) (*RegistrarAddressResp, error) {
	out := new(RegistrarAddressResp)
	err := c.cc.Invoke(ctx, "/xdapps.DappsControl/RegistrarAddress", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dappsControlClient) ContractCall(ctx context.Context, in *ContractCallReq, opts ...grpc.CallOption) (*ContractCallResp, error) {
	out := new(ContractCallResp)
	err := c.cc.Invoke(ctx, "/xdapps.DappsControl/ContractCall", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DappsControlServer is the server API for DappsControl service.
type DappsControlServer interface {
	ListDapps(context.Context, *ListDappsReq) (*ListDappsResp, error)
	RegistrarAddress(context.Context, *RegistrarAddressReq) (*RegistrarAddressResp, error)
	ContractCall(context.Context, *ContractCallReq) (*ContractCallResp, error)
}

// UnimplementedDappsControlServer can be embedded to have forward compatible implementations.
type UnimplementedDappsControlServer struct {
}

func (*UnimplementedDappsControlServer) ListDapps(ctx context.Context, req *ListDappsReq) (*ListDappsResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListDapps not implemented")
}

func (*UnimplementedDappsControlServer) RegistrarAddress(ctx context.Context, req *RegistrarAddressReq) (*RegistrarAddressResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegistrarAddress not implemented")
}

func (*UnimplementedDappsControlServer) ContractCall(ctx context.Context, req *ContractCallReq) (*ContractCallResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ContractCall not implemented")
}

func RegisterDappsControlServer(s *grpc.Server, srv DappsControlServer) {
	s.RegisterService(&_DappsControl_serviceDesc, srv)
}

func _DappsControl_ListDapps_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListDappsReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DappsControlServer).ListDapps(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/xdapps.DappsControl/ListDapps",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DappsControlServer).ListDapps(ctx, req.(*ListDappsReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _DappsControl_RegistrarAddress_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegistrarAddressReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DappsControlServer).RegistrarAddress(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/xdapps.DappsControl/RegistrarAddress",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DappsControlServer).RegistrarAddress(ctx, req.(*RegistrarAddressReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _DappsControl_ContractCall_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ContractCallReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DappsControlServer).ContractCall(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/xdapps.DappsControl/ContractCall",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DappsControlServer).ContractCall(ctx, req.(*ContractCallReq))
	}
	return interceptor(ctx, in, info, handler)
}

var _DappsControl_serviceDesc = grpc.ServiceDesc{
	ServiceName: "xdapps.DappsControl",
	HandlerType: (*DappsControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListDapps",
			Handler:    _DappsControl_ListDapps_Handler,
		},
		{
			MethodName: "RegistrarAddress",
			Handler:    _DappsControl_RegistrarAddress_Handler,
		},
		{
			MethodName: "ContractCall",
			Handler:    _DappsControl_ContractCall_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "xdapps.proto",
}
