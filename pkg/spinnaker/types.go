package spinnaker

// PixelFormat is a GenICam PFNC pixel format name as reported by
// spinImageGetPixelFormatName.
type PixelFormat string

// Pixel formats the Spinnaker SDK can deliver.
const (
	Mono1p          PixelFormat = "Mono1p"
	Mono2p          PixelFormat = "Mono2p"
	Mono4p          PixelFormat = "Mono4p"
	Mono8           PixelFormat = "Mono8"
	Mono8s          PixelFormat = "Mono8s"
	Mono10          PixelFormat = "Mono10"
	Mono10p         PixelFormat = "Mono10p"
	Mono10Packed    PixelFormat = "Mono10Packed"
	Mono12          PixelFormat = "Mono12"
	Mono12p         PixelFormat = "Mono12p"
	Mono12Packed    PixelFormat = "Mono12Packed"
	Mono14          PixelFormat = "Mono14"
	Mono16          PixelFormat = "Mono16"
	Mono16s         PixelFormat = "Mono16s"
	Mono32f         PixelFormat = "Mono32f"
	BayerGR8        PixelFormat = "BayerGR8"
	BayerRG8        PixelFormat = "BayerRG8"
	BayerGB8        PixelFormat = "BayerGB8"
	BayerBG8        PixelFormat = "BayerBG8"
	BayerGR10       PixelFormat = "BayerGR10"
	BayerRG10       PixelFormat = "BayerRG10"
	BayerGB10       PixelFormat = "BayerGB10"
	BayerBG10       PixelFormat = "BayerBG10"
	BayerGR10p      PixelFormat = "BayerGR10p"
	BayerRG10p      PixelFormat = "BayerRG10p"
	BayerGB10p      PixelFormat = "BayerGB10p"
	BayerBG10p      PixelFormat = "BayerBG10p"
	BayerGR12       PixelFormat = "BayerGR12"
	BayerRG12       PixelFormat = "BayerRG12"
	BayerGB12       PixelFormat = "BayerGB12"
	BayerBG12       PixelFormat = "BayerBG12"
	BayerGR12p      PixelFormat = "BayerGR12p"
	BayerRG12p      PixelFormat = "BayerRG12p"
	BayerGB12p      PixelFormat = "BayerGB12p"
	BayerBG12p      PixelFormat = "BayerBG12p"
	BayerGR16       PixelFormat = "BayerGR16"
	BayerRG16       PixelFormat = "BayerRG16"
	BayerGB16       PixelFormat = "BayerGB16"
	BayerBG16       PixelFormat = "BayerBG16"
	RGB8            PixelFormat = "RGB8"
	RGB8Packed      PixelFormat = "RGB8Packed"
	RGBa8           PixelFormat = "RGBa8"
	RGB10           PixelFormat = "RGB10"
	RGB10p32        PixelFormat = "RGB10p32"
	RGB12           PixelFormat = "RGB12"
	RGB16           PixelFormat = "RGB16"
	RGB16s          PixelFormat = "RGB16s"
	RGB32f          PixelFormat = "RGB32f"
	BGR8            PixelFormat = "BGR8"
	BGRa8           PixelFormat = "BGRa8"
	BGR10           PixelFormat = "BGR10"
	BGR10p          PixelFormat = "BGR10p"
	BGR12           PixelFormat = "BGR12"
	BGR16           PixelFormat = "BGR16"
	RGBa10          PixelFormat = "RGBa10"
	RGBa10p         PixelFormat = "RGBa10p"
	RGBa12          PixelFormat = "RGBa12"
	RGBa12p         PixelFormat = "RGBa12p"
	RGBa14          PixelFormat = "RGBa14"
	RGBa16          PixelFormat = "RGBa16"
	RGB10p          PixelFormat = "RGB10p"
	RGB12p          PixelFormat = "RGB12p"
	RGB14           PixelFormat = "RGB14"
	RGB565p         PixelFormat = "RGB565p"
	BGRa10          PixelFormat = "BGRa10"
	BGRa10p         PixelFormat = "BGRa10p"
	BGRa12          PixelFormat = "BGRa12"
	BGRa12p         PixelFormat = "BGRa12p"
	BGRa14          PixelFormat = "BGRa14"
	BGRa16          PixelFormat = "BGRa16"
	BGR12p          PixelFormat = "BGR12p"
	BGR14           PixelFormat = "BGR14"
	BGR565p         PixelFormat = "BGR565p"
	R8              PixelFormat = "R8"
	R10             PixelFormat = "R10"
	R12             PixelFormat = "R12"
	R16             PixelFormat = "R16"
	G8              PixelFormat = "G8"
	G10             PixelFormat = "G10"
	G12             PixelFormat = "G12"
	G16             PixelFormat = "G16"
	B8              PixelFormat = "B8"
	B10             PixelFormat = "B10"
	B12             PixelFormat = "B12"
	B16             PixelFormat = "B16"
	YUV411_8_UYYVYY PixelFormat = "YUV411_8_UYYVYY"
	YUV422_8_UYVY   PixelFormat = "YUV422_8_UYVY"
	YUV422_8        PixelFormat = "YUV422_8"
	YUV8_UYV        PixelFormat = "YUV8_UYV"
	YCbCr8          PixelFormat = "YCbCr8"
	YCbCr422_8      PixelFormat = "YCbCr422_8"
	YCbCr411_8      PixelFormat = "YCbCr411_8"
	Coord3D_ABC32f  PixelFormat = "Coord3D_ABC32f"
	Coord3D_C16     PixelFormat = "Coord3D_C16"
	Confidence8     PixelFormat = "Confidence8"
	Raw16           PixelFormat = "Raw16"
	Raw8            PixelFormat = "Raw8"
)

// ColorProcessing selects the demosaicing algorithm used by Convert.
type ColorProcessing int32

// spinColorProcessingAlgorithm values.
const (
	ColorProcessingNone ColorProcessing = iota
	ColorProcessingNearestNeighbor
	ColorProcessingNearestNeighborAvg
	ColorProcessingBilinear
	ColorProcessingEdgeSensing
	ColorProcessingHQLinear
	ColorProcessingIPP
	ColorProcessingDirectionalFilter
	ColorProcessingRigorous
	ColorProcessingWeightedDirectionalFilter
)
