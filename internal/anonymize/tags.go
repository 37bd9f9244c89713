package anonymize

import "github.com/suyashkumar/dicom/pkg/tag"

// overwriteTags are the tags rewritten with derived values, in application
// order. Values are paired positionally in Transform.Anonymize.
var overwriteTags = []tag.Tag{
	tag.StationName,
	tag.InstanceCreationDate,
	tag.StudyDate,
	tag.SeriesDate,
	tag.AcquisitionDate,
	tag.ContentDate,
	tag.AccessionNumber,
	tag.PatientName,
	tag.PatientID,
	tag.PatientBirthDate,
	tag.StudyID,
}

// overwriteTagNames mirrors overwriteTags for logging.
var overwriteTagNames = []string{
	"StationName",
	"InstanceCreationDate",
	"StudyDate",
	"SeriesDate",
	"AcquisitionDate",
	"ContentDate",
	"AccessionNumber",
	"PatientName",
	"PatientID",
	"PatientBirthDate",
	"StudyID",
}

// clearedTags are identifying free-text tags emptied entirely. Absence of
// any of these from a dataset is expected and non-fatal.
var clearedTags = []tag.Tag{
	tag.InstitutionName,
	tag.InstitutionAddress,
	tag.ReferringPhysicianName,
	tag.ReferringPhysicianAddress,
	tag.ReferringPhysicianTelephoneNumbers,
	tag.InstitutionalDepartmentName,
	tag.PhysiciansOfRecord,
	tag.PerformingPhysicianName,
	tag.NameOfPhysiciansReadingStudy,
	tag.OperatorsName,
	tag.AdmittingDiagnosesDescription,
	tag.OtherPatientIDs,
	tag.OtherPatientNames,
	tag.MedicalRecordLocator,
	tag.EthnicGroup,
	tag.Occupation,
	tag.AdditionalPatientHistory,
	tag.PatientComments,
	tag.RequestingPhysician,
	tag.RequestingService,
	tag.RequestedProcedureDescription,
	tag.ScheduledPerformingPhysicianName,
	tag.PerformedStationAETitle,
	tag.RequestAttributesSequence,
	tag.RequestedProcedureID,
	tag.IssueDateOfImagingServiceRequest,
	tag.ContentSequence,
	tag.ImplementationVersionName,
	tag.ProcedureCodeSequence,
	tag.PerformedProcedureStepDescription,
	tag.PerformedProtocolCodeSequence,
	tag.RetrieveAETitle,
	tag.ReferencedPerformedProcedureStepSequence,
}

// tagName returns the dictionary keyword for a tag, falling back to its
// group/element form.
func tagName(t tag.Tag) string {
	if info, err := tag.Find(t); err == nil && info.Name != "" {
		return info.Name
	}
	return t.String()
}
