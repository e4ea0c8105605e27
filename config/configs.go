package config

import (
	"encoding/xml"
	"fmt"
	"os"
)

var MainRouter string
var DataPath string
var Dbname string
var RayLength float64
var MainConfig Config

type Config struct {
	XMLName   xml.Name `xml:"config"`
	Host      string   `xml:"host"`
	Port      string   `xml:"port"`
	DataPath  string   `xml:"DataPath"`
	Dbname    string   `xml:"dbname"`
	RayLength float64  `xml:"raylength"`
}

func init() {
	// 缺省值，config.xml存在时覆盖
	MainRouter = "127.0.0.1:8426"
	DataPath = "./data"
	Dbname = "auracore.db"
	RayLength = 100

	xmlFile, err := os.Open("config.xml")
	if err != nil {
		fmt.Println("Error  opening  file:", err)
		return
	}
	defer xmlFile.Close()

	xmlDecoder := xml.NewDecoder(xmlFile)
	err = xmlDecoder.Decode(&MainConfig)
	if err != nil {
		fmt.Println("Error  decoding  XML:", err)
		return
	}
	if MainConfig.Host != "" && MainConfig.Port != "" {
		MainRouter = MainConfig.Host + ":" + MainConfig.Port
	}
	if MainConfig.DataPath != "" {
		DataPath = MainConfig.DataPath
	}
	if MainConfig.Dbname != "" {
		Dbname = MainConfig.Dbname
	}
	if MainConfig.RayLength > 0 {
		RayLength = MainConfig.RayLength
	}
}
